// SPDX-License-Identifier: BSD-3-Clause

package ipc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/mini-bmc/mini-bmc/pkg/log"
	"github.com/mini-bmc/mini-bmc/service"
)

// Compile-time assertion that IPC implements service.Service.
var _ service.Service = (*IPC)(nil)

// IPC runs an embedded NATS server as the daemon-internal message bus.
// The server never listens on a network port: all connections are
// in-process, obtained via the ConnProvider. The bus carries sensor
// reading and SEL event broadcasts between services.
type IPC struct {
	config *config
	server *server.Server
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates a new IPC service instance with the provided options.
func New(opts ...Option) *IPC {
	cfg := &config{
		serviceName:     DefaultServiceName,
		serverName:      DefaultServerName,
		startupTimeout:  DefaultStartupTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &IPC{
		config: cfg,
	}
}

// Name returns the service name.
func (s *IPC) Name() string {
	return s.config.serviceName
}

// Run starts the embedded NATS server and keeps it up until the context
// is canceled, then shuts it down gracefully.
func (s *IPC) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.tracer = otel.Tracer(s.config.serviceName)

	ctx, span := s.tracer.Start(ctx, "ipc.Run")
	defer span.End()

	s.logger = log.GetGlobalLogger().With("service", s.config.serviceName)

	// This service provides the bus; it cannot also consume one.
	if ipcConn != nil {
		span.RecordError(ErrExternalConn)
		return ErrExternalConn
	}

	if err := s.config.Validate(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	ns, err := server.NewServer(&server.Options{
		ServerName: s.config.serverName,
		DontListen: true,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrServerCreationFailed, err)
	}
	s.server = ns
	s.server.SetLoggerV2(log.NewNATSLogger(s.logger), false, false, false)

	s.logger.InfoContext(ctx, "Starting embedded NATS server", "server_name", s.config.serverName)
	s.server.Start()

	if !s.server.ReadyForConnections(s.config.startupTimeout) {
		s.server.Shutdown()
		err := fmt.Errorf("%w: server not ready within %v", ErrServerTimeout, s.config.startupTimeout)
		span.RecordError(err)
		return err
	}

	s.logger.InfoContext(ctx, "IPC bus ready", "server_id", s.server.ID())

	<-ctx.Done()

	return s.shutdown(ctx)
}

// GetConnProvider returns a provider handing out in-process connections
// to the bus. It may be called before Run has finished starting the
// server; the provider blocks briefly until the server exists.
func (s *IPC) GetConnProvider() *ConnProvider {
	deadline := time.Now().Add(s.config.startupTimeout)
	for s.server == nil && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	return &ConnProvider{
		server: s.server,
	}
}

func (s *IPC) shutdown(ctx context.Context) error {
	err := ctx.Err()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.shutdownTimeout)
	defer cancel()

	s.logger.InfoContext(shutdownCtx, "Shutting down IPC bus")

	if s.server != nil {
		s.server.LameDuckShutdown()

		done := make(chan struct{})
		go func() {
			defer close(done)
			s.server.Shutdown()
		}()

		select {
		case <-done:
			s.logger.InfoContext(shutdownCtx, "IPC bus shutdown completed")
		case <-shutdownCtx.Done():
			s.logger.WarnContext(shutdownCtx, "IPC bus shutdown timed out")
		}
	}

	return err
}
