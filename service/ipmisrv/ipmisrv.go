// SPDX-License-Identifier: BSD-3-Clause

package ipmisrv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/qmuntal/stateless"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/mini-bmc/mini-bmc/pkg/ipmi"
	"github.com/mini-bmc/mini-bmc/pkg/log"
	"github.com/mini-bmc/mini-bmc/service"
)

// Compile-time assertion that IPMISrv implements service.Service.
var _ service.Service = (*IPMISrv)(nil)

// Listener lifecycle states and triggers.
const (
	StateUnbound   = "unbound"
	StateListening = "listening"
	StateStopped   = "stopped"

	triggerBind = "bind"
	triggerStop = "stop"
)

// IPMISrv accepts framed IPMI requests on a local stream socket and
// dispatches them against the shared state. A single accept loop
// serializes traffic; each connection carries exactly one
// request/response exchange.
type IPMISrv struct {
	config     *config
	fsm        *stateless.StateMachine
	listener   net.Listener
	dispatcher *ipmi.Dispatcher
	logger     *slog.Logger
	tracer     trace.Tracer
	stopOnce   sync.Once
}

// New creates a new IPMISrv instance with the provided options.
func New(opts ...Option) *IPMISrv {
	cfg := &config{
		serviceName: DefaultServiceName,
		socketPath:  DefaultSocketPath,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &IPMISrv{
		config: cfg,
	}
}

// Name returns the service name.
func (s *IPMISrv) Name() string {
	return s.config.serviceName
}

// State returns the current lifecycle state of the listener.
func (s *IPMISrv) State() string {
	if s.fsm == nil {
		return StateUnbound
	}
	return s.fsm.MustState().(string)
}

// Run binds the socket and serves requests until the context is
// canceled. Stopping closes the socket and unlinks its path.
func (s *IPMISrv) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.tracer = otel.Tracer(s.config.serviceName)

	ctx, span := s.tracer.Start(ctx, "ipmisrv.Run")
	defer span.End()

	s.logger = log.GetGlobalLogger().With("service", s.config.serviceName)

	if err := s.config.Validate(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	s.dispatcher = ipmi.NewDispatcher(s.config.state)

	s.fsm = stateless.NewStateMachine(StateUnbound)
	s.fsm.Configure(StateUnbound).Permit(triggerBind, StateListening)
	s.fsm.Configure(StateListening).Permit(triggerStop, StateStopped)

	// Remove a stale socket from a previous unclean shutdown.
	_ = os.Remove(s.config.socketPath)

	ln, err := net.Listen("unix", s.config.socketPath)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %s: %w", ErrListenFailed, s.config.socketPath, err)
	}
	s.listener = ln

	if err := s.fsm.Fire(triggerBind); err != nil {
		_ = ln.Close()
		_ = os.Remove(s.config.socketPath)
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrLifecycle, err)
	}

	s.logger.InfoContext(ctx, "IPMI listener started", "socket", s.config.socketPath)

	// Cancellation unblocks the accept loop by closing the listener;
	// the loop itself performs the stop transition and unlink so the
	// socket path is gone before Run returns.
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.stop(ctx)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("%w: %w", ErrAcceptFailed, err)
		}
		s.handleConn(ctx, conn)
	}
}

// stop transitions the listener to stopped, closes the socket and
// unlinks its path.
func (s *IPMISrv) stop(ctx context.Context) {
	s.stopOnce.Do(func() {
		if err := s.fsm.Fire(triggerStop); err != nil {
			s.logger.WarnContext(ctx, "Listener stop transition failed", "error", err)
		}
		if s.listener != nil {
			_ = s.listener.Close()
		}
		_ = os.Remove(s.config.socketPath)
		s.logger.InfoContext(ctx, "IPMI listener stopped", "socket", s.config.socketPath)
	})
}

// handleConn serves one request/response exchange. Protocol errors
// never propagate: malformed frames drop the connection and anything
// dispatchable completes with an IPMI completion code.
func (s *IPMISrv) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	req, err := ipmi.ReadRequest(conn)
	if err != nil {
		s.logger.DebugContext(ctx, "Dropping malformed request", "error", err)
		return
	}

	resp := s.dispatcher.Dispatch(req)

	if err := ipmi.WriteResponse(conn, resp); err != nil {
		s.logger.DebugContext(ctx, "Failed to write response", "error", err)
	}
}
