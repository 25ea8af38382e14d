// SPDX-License-Identifier: BSD-3-Clause

package secureboot

import "errors"

var (
	// ErrImageDirCreation indicates a failure to create the firmware blob directory.
	ErrImageDirCreation = errors.New("failed to create firmware image directory")
	// ErrImageGeneration indicates a failure to materialize a firmware blob.
	ErrImageGeneration = errors.New("failed to generate firmware image")
	// ErrImageHash indicates a failure to digest a firmware blob.
	ErrImageHash = errors.New("failed to hash firmware image")
	// ErrImageIndex indicates an out-of-range firmware image index.
	ErrImageIndex = errors.New("firmware image index out of range")
	// ErrImageTamper indicates a failure to modify a firmware blob.
	ErrImageTamper = errors.New("failed to tamper firmware image")
)
