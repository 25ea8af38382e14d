// SPDX-License-Identifier: BSD-3-Clause

package ipc

import (
	"fmt"
	"net"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

// connReadyTimeout bounds how long a connection attempt waits for the
// embedded server to finish starting.
const connReadyTimeout = time.Minute

// ConnProvider hands out in-process connections to the embedded NATS
// server. It satisfies nats.InProcessConnProvider, so services connect
// with nats.Connect("", nats.InProcessServer(provider)).
type ConnProvider struct {
	server *server.Server
}

// InProcessConn creates a new in-process connection, waiting up to
// connReadyTimeout for the server to become ready first.
func (p *ConnProvider) InProcessConn() (net.Conn, error) {
	switch {
	case p.server == nil:
		return nil, ErrConnectionNotAvailable
	case !p.server.ReadyForConnections(connReadyTimeout):
		return nil, ErrServerNotReady
	}

	conn, err := p.server.InProcessConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInProcessConnFailed, err)
	}

	return conn, nil
}
