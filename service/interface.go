// SPDX-License-Identifier: BSD-3-Clause

package service

import (
	"context"

	"github.com/nats-io/nats.go"
)

// Service is an interface for long running processes or daemons.
// A service might be restarted if it returns an error.
// If a service returns nil, it is regarded to be done, also known as a
// oneshot service. The name should be unique per system.
type Service interface {
	// Name returns the unique name of the service.
	Name() string

	// Run starts the service with the provided context. The ipcConn
	// provider hands out in-process connections to the message bus and
	// may be nil when the bus is disabled; services must degrade to
	// broadcast-free operation in that case.
	Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error
}
