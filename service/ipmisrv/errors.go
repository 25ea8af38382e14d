// SPDX-License-Identifier: BSD-3-Clause

package ipmisrv

import "errors"

var (
	// ErrInvalidConfiguration indicates an invalid IPMI server configuration.
	ErrInvalidConfiguration = errors.New("invalid IPMI server configuration")
	// ErrNameEmpty indicates an empty service name.
	ErrNameEmpty = errors.New("service name cannot be empty")
	// ErrInvalidSocketPath indicates an empty socket path.
	ErrInvalidSocketPath = errors.New("socket path cannot be empty")
	// ErrStateNil indicates that no shared state was attached.
	ErrStateNil = errors.New("shared state is nil")
	// ErrListenFailed indicates the unix socket could not be bound.
	ErrListenFailed = errors.New("failed to bind IPMI socket")
	// ErrAcceptFailed indicates the accept loop died unexpectedly.
	ErrAcceptFailed = errors.New("accept failed")
	// ErrLifecycle indicates an invalid listener lifecycle transition.
	ErrLifecycle = errors.New("listener lifecycle transition failed")
)
