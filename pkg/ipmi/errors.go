// SPDX-License-Identifier: BSD-3-Clause

package ipmi

import "errors"

var (
	// ErrShortFrame indicates a truncated or oversized wire frame.
	ErrShortFrame = errors.New("malformed IPMI frame")
	// ErrFrameWrite indicates a failure to write a response frame.
	ErrFrameWrite = errors.New("failed to write IPMI frame")
)
