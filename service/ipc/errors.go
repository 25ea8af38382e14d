// SPDX-License-Identifier: BSD-3-Clause

package ipc

import "errors"

var (
	// ErrInvalidConfiguration indicates an invalid IPC configuration.
	ErrInvalidConfiguration = errors.New("invalid IPC configuration")
	// ErrNameEmpty indicates an empty service or server name.
	ErrNameEmpty = errors.New("name cannot be empty")
	// ErrInvalidTimeout indicates a non-positive timeout.
	ErrInvalidTimeout = errors.New("timeout must be positive")
	// ErrExternalConn indicates an external bus was passed to the bus provider.
	ErrExternalConn = errors.New("IPC service cannot consume an external IPC connection")
	// ErrServerCreationFailed indicates the embedded NATS server could not be created.
	ErrServerCreationFailed = errors.New("failed to create NATS server")
	// ErrServerTimeout indicates the server did not become ready in time.
	ErrServerTimeout = errors.New("NATS server startup timeout")
	// ErrConnectionNotAvailable indicates the server is not available yet.
	ErrConnectionNotAvailable = errors.New("IPC connection not available")
	// ErrServerNotReady indicates the server is not ready for connections.
	ErrServerNotReady = errors.New("IPC server not ready")
	// ErrInProcessConnFailed indicates an in-process connection could not be created.
	ErrInProcessConnFailed = errors.New("failed to create in-process connection")
)
