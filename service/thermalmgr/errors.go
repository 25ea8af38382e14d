// SPDX-License-Identifier: BSD-3-Clause

package thermalmgr

import "errors"

var (
	// ErrInvalidConfiguration indicates an invalid thermal manager configuration.
	ErrInvalidConfiguration = errors.New("invalid thermal manager configuration")
	// ErrNameEmpty indicates an empty service name.
	ErrNameEmpty = errors.New("service name cannot be empty")
	// ErrInvalidPollInterval indicates a non-positive poll interval.
	ErrInvalidPollInterval = errors.New("poll interval must be positive")
	// ErrStateNil indicates that no shared state was attached.
	ErrStateNil = errors.New("shared state is nil")
	// ErrEngineNil indicates that no sensor engine was attached.
	ErrEngineNil = errors.New("sensor engine is nil")
	// ErrInvalidPath indicates an empty export file path.
	ErrInvalidPath = errors.New("export file path cannot be empty")
	// ErrNATSConnectionFailed indicates the bus connection could not be established.
	ErrNATSConnectionFailed = errors.New("failed to connect to IPC bus")
)
