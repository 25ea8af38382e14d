// SPDX-License-Identifier: BSD-3-Clause

package operator

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cirello.io/oversight/v2"
	"github.com/arunsworld/nursery"
	"github.com/nats-io/nats.go"

	"github.com/mini-bmc/mini-bmc/pkg/bmc"
	"github.com/mini-bmc/mini-bmc/pkg/id"
	"github.com/mini-bmc/mini-bmc/pkg/log"
	"github.com/mini-bmc/mini-bmc/pkg/process"
	"github.com/mini-bmc/mini-bmc/pkg/secureboot"
	"github.com/mini-bmc/mini-bmc/pkg/sel"
	"github.com/mini-bmc/mini-bmc/pkg/sensor"
	"github.com/mini-bmc/mini-bmc/pkg/thermal"
	"github.com/mini-bmc/mini-bmc/service"
	ipcsvc "github.com/mini-bmc/mini-bmc/service/ipc"
	"github.com/mini-bmc/mini-bmc/service/ipmisrv"
	"github.com/mini-bmc/mini-bmc/service/thermalmgr"
)

const defaultLogo = `
╔══════════════════════════════════════════╗
║               mini-bmc v1.0              ║
║     Baseboard Management Controller      ║
║            Firmware Simulator            ║
╚══════════════════════════════════════════╝
`

// Compile-time assertion that Operator implements service.Service.
var _ service.Service = (*Operator)(nil)

// Operator orchestrates the daemon: it runs the init phases (state,
// sensors, PID, secure boot), builds the supervision tree for the
// long-running services, and performs the orderly shutdown sequence.
type Operator struct {
	config config
	state  *bmc.State
}

// New creates a new Operator instance with the provided configuration
// options.
func New(opts ...Option) *Operator {
	cfg := newConfig()
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &Operator{
		config: *cfg,
	}
}

// Name returns the configured name of the operator service.
func (s *Operator) Name() string {
	return s.config.name
}

// State returns the shared BMC state after Run has initialized it.
// Exposed for tests and embedding targets.
func (s *Operator) State() *bmc.State {
	return s.state
}

// Run executes the init phases and supervises the services until the
// context is canceled. It returns a non-nil error only for fatal init
// failures; a canceled context after clean shutdown yields nil.
func (s *Operator) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) (err error) {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s %w: %v", s.Name(), ErrPanicked, r)
		}
	}()

	l := log.GetGlobalLogger().With("service", s.config.name)

	if s.config.id == "" {
		idStr, err := id.GetOrCreatePersistentID("instance.uuid", s.config.idDir)
		if err != nil {
			l.WarnContext(ctx, "Failed to get persistent ID, using ephemeral ID", "error", err)
			s.config.id = id.NewID()
		} else {
			s.config.id = idStr
		}
	}

	if !s.config.disableLogo {
		if s.config.customLogo != "" {
			l.Info(s.config.customLogo)
		} else {
			l.Info(defaultLogo)
		}
	}

	l.InfoContext(ctx, "Starting BMC simulator", "instance_id", s.config.id)

	// Phase 1: shared state, event log, sensors, PID.
	engine, err := s.initState(ctx, l)
	if err != nil {
		return err
	}

	// Phase 2: secure boot chain of trust.
	if err := s.runSecureBoot(ctx, l); err != nil {
		return err
	}

	// Phase 3: supervised services.
	err = s.superviseServices(ctx, l, ipcConn, engine)

	// Orderly shutdown regardless of why supervision ended.
	s.shutdown(context.WithoutCancel(ctx), l)

	if err != nil && ctx.Err() != nil {
		// Cancellation-driven exit is a clean shutdown.
		return nil
	}
	return err
}

// initState builds the shared record: event log entry, sensor engine
// and readings, PID controller with operator tuning.
func (s *Operator) initState(ctx context.Context, l *slog.Logger) (*sensor.Engine, error) {
	s.state = bmc.NewState()

	s.state.Lock()
	s.state.SEL.Add(sel.SeverityInfo, "System", "BMC daemon starting up")
	s.state.Unlock()

	engine, err := sensor.NewEngine(s.config.sensorConfigs, s.config.sensorSeed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSensorInit, err)
	}

	pid := thermal.New(s.config.kp, s.config.ki, s.config.kd, s.config.setpoint)
	if err := pid.SetOutputLimits(s.config.outputMin, s.config.outputMax); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPIDInit, err)
	}
	if err := pid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPIDInit, err)
	}

	s.state.Lock()
	s.state.Sensors = engine.Readings()
	s.state.PID = pid
	s.state.Unlock()

	l.InfoContext(ctx, "Initialized subsystems",
		"sensors", len(s.config.sensorConfigs),
		"pid_kp", s.config.kp,
		"pid_ki", s.config.ki,
		"pid_kd", s.config.kd,
		"setpoint_c", s.config.setpoint)

	return engine, nil
}

// runSecureBoot materializes the firmware chain and verifies it. A
// failed chain leaves the daemon in degraded mode rather than aborting:
// a management controller must stay observable even when the payload it
// guards is not trustworthy.
func (s *Operator) runSecureBoot(ctx context.Context, l *slog.Logger) error {
	chain := secureboot.NewChain(s.config.imageDir)

	s.state.Lock()
	defer s.state.Unlock()

	if err := chain.Init(s.state.SEL); err != nil {
		return fmt.Errorf("%w: %w", ErrSecureBootInit, err)
	}
	s.state.SecureBoot = chain

	passed := chain.Verify(s.state.SEL)
	s.state.SecureBootPassed = passed

	if passed {
		s.state.SEL.Add(sel.SeverityInfo, "System", "Secure boot verification passed")
		l.InfoContext(ctx, "Secure boot verification passed")
	} else {
		s.state.SEL.Add(sel.SeverityCritical, "System",
			"Secure boot verification FAILED - continuing in degraded mode")
		l.WarnContext(ctx, "Secure boot verification failed, continuing in degraded mode")
	}

	return nil
}

// superviseServices builds the oversight tree (IPC bus, thermal loop,
// IPMI listener) and runs it until the context ends.
func (s *Operator) superviseServices(ctx context.Context, l *slog.Logger, ipcConn nats.InProcessConnProvider, engine *sensor.Engine) error {
	supervisionTree := oversight.New(
		oversight.NeverHalt(),
		oversight.DefaultRestartStrategy(),
		oversight.WithLogger(log.NewOversightLogger(l)),
	)

	var ipcService *ipcsvc.IPC
	if ipcConn == nil && s.config.enableIPC {
		ipcService = ipcsvc.New()
		if err := supervisionTree.Add(
			process.New(ipcService, nil),
			oversight.Transient(),
			oversight.Timeout(s.config.timeout),
			ipcService.Name(),
		); err != nil {
			return fmt.Errorf("%w %s: %w", ErrAddProcess, ipcService.Name(), err)
		}
	}

	thermalService := thermalmgr.New(append([]thermalmgr.Option{
		thermalmgr.WithState(s.state),
		thermalmgr.WithEngine(engine),
		thermalmgr.WithPollInterval(s.config.pollInterval),
		thermalmgr.WithStateFilePath(s.config.stateFilePath),
		thermalmgr.WithSELFilePath(s.config.selFilePath),
	}, s.config.thermalOpts...)...)

	ipmiService := ipmisrv.New(append([]ipmisrv.Option{
		ipmisrv.WithState(s.state),
		ipmisrv.WithSocketPath(s.config.socketPath),
	}, s.config.ipmiOpts...)...)

	supervise := func(ctx context.Context, c chan error) {
		c <- supervisionTree.Start(ctx)
	}

	spawnProcs := func(ctx context.Context, c chan error) {
		conn := ipcConn
		if conn == nil && ipcService != nil {
			conn = ipcService.GetConnProvider()
		}

		for _, svc := range []service.Service{thermalService, ipmiService} {
			if err := supervisionTree.Add(
				process.New(svc, conn),
				oversight.Transient(),
				oversight.Timeout(s.config.timeout),
				svc.Name(),
			); err != nil {
				c <- fmt.Errorf("%w %s: %w", ErrAddProcess, svc.Name(), err)
				return
			}
		}

		for _, svc := range s.config.extraServices {
			if err := supervisionTree.Add(
				process.New(svc, conn),
				oversight.Transient(),
				oversight.Timeout(s.config.timeout),
				svc.Name(),
			); err != nil {
				c <- fmt.Errorf("%w %s: %w", ErrAddProcess, svc.Name(), err)
				return
			}
		}

		s.state.Lock()
		s.state.SEL.Add(sel.SeverityInfo, "System", "BMC daemon fully operational")
		s.state.Unlock()
	}

	l.InfoContext(ctx, "Starting child routines", "service", s.config.name)
	return nursery.RunConcurrentlyWithContext(ctx, supervise, spawnProcs)
}

// shutdown clears the run flag, records the final SEL entry, persists
// the log one last time and removes the process-local artifacts.
func (s *Operator) shutdown(ctx context.Context, l *slog.Logger) {
	s.state.SetRunning(false)

	s.state.Lock()
	s.state.SEL.Add(sel.SeverityInfo, "System", "BMC daemon shutting down")
	s.state.Unlock()

	if data, err := s.state.EncodeSEL(); err == nil {
		_ = os.WriteFile(s.config.selFilePath, data, 0o644)
	}

	if s.state.SecureBoot != nil {
		if err := s.state.SecureBoot.Cleanup(); err != nil {
			l.WarnContext(ctx, "Failed to clean up firmware images", "error", err)
		}
	}

	if s.config.removeFilesOnExit {
		_ = os.Remove(s.config.stateFilePath)
		_ = os.Remove(s.config.selFilePath)
	}

	l.InfoContext(ctx, "BMC simulator stopped")
}
