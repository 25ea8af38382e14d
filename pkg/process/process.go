// SPDX-License-Identifier: BSD-3-Clause

package process

import (
	"context"
	"fmt"

	"cirello.io/oversight/v2"
	"github.com/nats-io/nats.go"

	"github.com/mini-bmc/mini-bmc/service"
)

// New adapts a service.Service to an oversight child process, converting
// panics into errors so the supervision tree can restart the child
// instead of taking down the daemon.
func New(s service.Service, ipcConn nats.InProcessConnProvider) oversight.ChildProcess {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s %w: %v", s.Name(), ErrServicePanic, r)
			}
		}()

		return s.Run(ctx, ipcConn)
	}
}
