// SPDX-License-Identifier: BSD-3-Clause

package bmc

import "errors"

var (
	// ErrSnapshotEncode indicates a failure to serialize the state snapshot.
	ErrSnapshotEncode = errors.New("failed to encode state snapshot")
	// ErrSELEncode indicates a failure to serialize the SEL document.
	ErrSELEncode = errors.New("failed to encode SEL document")
)
