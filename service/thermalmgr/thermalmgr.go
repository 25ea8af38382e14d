// SPDX-License-Identifier: BSD-3-Clause

package thermalmgr

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/mini-bmc/mini-bmc/pkg/file"
	"github.com/mini-bmc/mini-bmc/pkg/log"
	"github.com/mini-bmc/mini-bmc/pkg/sel"
	"github.com/mini-bmc/mini-bmc/pkg/sensor"
	"github.com/mini-bmc/mini-bmc/service"
)

// Compile-time assertion that ThermalMgr implements service.Service.
var _ service.Service = (*ThermalMgr)(nil)

// statusLogEvery controls the periodic operator-visible status line.
const statusLogEvery = 5

// ThermalMgr runs the main control tick: poll the sensor simulation,
// feed the CPU temperature to the PID controller, command the fan duty,
// and export the state snapshot and SEL to disk. It optionally
// broadcasts per-tick sensor readings and SEL events on the IPC bus.
type ThermalMgr struct {
	config *config
	nc     *nats.Conn
	logger *slog.Logger
	tracer trace.Tracer
	cycle  int
}

// New creates a new ThermalMgr instance with the provided options.
func New(opts ...Option) *ThermalMgr {
	cfg := &config{
		serviceName:   DefaultServiceName,
		pollInterval:  DefaultPollInterval,
		stateFilePath: DefaultStateFilePath,
		selFilePath:   DefaultSELFilePath,
		cpuSensorName: DefaultCPUSensorName,
		broadcast:     true,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &ThermalMgr{
		config: cfg,
	}
}

// Name returns the service name.
func (s *ThermalMgr) Name() string {
	return s.config.serviceName
}

// Run executes the periodic control loop until the context is canceled.
// A final snapshot and SEL persist happen on the way out so downstream
// readers see the shutdown state.
func (s *ThermalMgr) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.tracer = otel.Tracer(s.config.serviceName)

	ctx, span := s.tracer.Start(ctx, "thermalmgr.Run")
	defer span.End()

	s.logger = log.GetGlobalLogger().With("service", s.config.serviceName)

	if err := s.config.Validate(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	if ipcConn != nil && s.config.broadcast {
		nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("%w: %w", ErrNATSConnectionFailed, err)
		}
		s.nc = nc
		defer nc.Drain() //nolint:errcheck
	}

	s.installSELHooks()

	st := s.config.state
	cpuIdx := func() int {
		st.Lock()
		defer st.Unlock()
		return st.CPUSensorIndex(s.config.cpuSensorName)
	}()

	s.logger.InfoContext(ctx, "Starting thermal control loop",
		"poll_interval", s.config.pollInterval,
		"cpu_sensor", s.config.cpuSensorName,
		"state_file", s.config.stateFilePath)

	ticker := time.NewTicker(s.config.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.persist(ctx)
			s.logger.InfoContext(ctx, "Stopping thermal control loop", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx, cpuIdx)
		}
	}
}

// tick performs one poll-and-control cycle. Mutation happens under the
// state lock; disk I/O and broadcasts happen after it is released so
// IPMI handlers are never blocked on filesystem latency.
func (s *ThermalMgr) tick(ctx context.Context, cpuIdx int) {
	st := s.config.state
	dt := s.config.pollInterval.Seconds()

	st.Lock()
	s.config.engine.Poll(st.Sensors, st.FanDutyPercent, st.SEL)

	cpuTemp := st.Sensors[cpuIdx].Value
	duty := st.PID.Compute(cpuTemp, dt)
	setpoint := st.PID.Setpoint
	st.FanDutyPercent = duty

	var readings []sensor.Reading
	if s.nc != nil {
		readings = append(readings, st.Sensors...)
	}
	st.Unlock()

	s.persist(ctx)
	s.broadcastReadings(readings)

	s.cycle++
	if s.cycle%statusLogEvery == 0 {
		s.logger.InfoContext(ctx, "Control cycle",
			"cycle", s.cycle,
			"cpu_temp_c", fmt.Sprintf("%.1f", cpuTemp),
			"fan_duty_percent", fmt.Sprintf("%.1f", duty),
			"setpoint_c", fmt.Sprintf("%.1f", setpoint))
	}
}

// persist exports the state snapshot atomically and the SEL best-effort.
// Failures are logged and retried on the next tick.
func (s *ThermalMgr) persist(ctx context.Context) {
	st := s.config.state

	if data, err := st.EncodeSnapshot(); err != nil {
		s.logger.WarnContext(ctx, "Failed to encode state snapshot", "error", err)
	} else if err := file.AtomicUpdateFile(s.config.stateFilePath, data, 0o644); err != nil {
		s.logger.WarnContext(ctx, "Failed to write state snapshot", "error", err)
	}

	if data, err := st.EncodeSEL(); err != nil {
		s.logger.WarnContext(ctx, "Failed to encode SEL", "error", err)
	} else if err := file.AtomicUpdateFile(s.config.selFilePath, data, 0o644); err != nil {
		s.logger.WarnContext(ctx, "Failed to write SEL", "error", err)
	}
}

// installSELHooks arms the event log: Critical entries flush the SEL
// file immediately, and when the bus is up every entry is broadcast.
// Both hooks run with the state lock held, so the critical flush copies
// the document and writes it from a fresh goroutine, and the broadcast
// only hands the entry to the NATS client's internal buffer.
func (s *ThermalMgr) installSELHooks() {
	st := s.config.state

	st.Lock()
	defer st.Unlock()

	st.SEL.SetCriticalHook(func() {
		doc := st.SEL.Document()
		go func() {
			b, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return
			}
			_ = file.AtomicUpdateFile(s.config.selFilePath, append(b, '\n'), 0o644)
		}()
	})

	if s.nc != nil {
		st.SEL.SetAppendHook(func(e sel.Entry) {
			b, err := json.Marshal(e)
			if err != nil {
				return
			}
			_ = s.nc.Publish(SubjectSELEvent, b)
		})
	}
}

func (s *ThermalMgr) broadcastReadings(readings []sensor.Reading) {
	if s.nc == nil {
		return
	}

	for i := range readings {
		r := &readings[i]
		b, err := json.Marshal(struct {
			Name        string  `json:"name"`
			Type        string  `json:"type"`
			Value       float64 `json:"value"`
			Status      string  `json:"status"`
			LastUpdated int64   `json:"last_updated"`
		}{
			Name:        r.Name,
			Type:        r.Type.String(),
			Value:       r.Value,
			Status:      r.Status.String(),
			LastUpdated: r.LastUpdated.Unix(),
		})
		if err != nil {
			continue
		}
		_ = s.nc.Publish(SubjectSensorReading+"."+r.Name, b)
	}
}
