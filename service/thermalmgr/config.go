// SPDX-License-Identifier: BSD-3-Clause

package thermalmgr

import (
	"time"

	"github.com/mini-bmc/mini-bmc/pkg/bmc"
	"github.com/mini-bmc/mini-bmc/pkg/sensor"
)

// Defaults for the control loop.
const (
	DefaultServiceName   = "thermalmgr"
	DefaultPollInterval  = 2 * time.Second
	DefaultStateFilePath = bmc.DefaultStateFilePath
	DefaultSELFilePath   = bmc.DefaultSELFilePath
	DefaultCPUSensorName = "CPU_Temp"
)

// Bus subjects for broadcasts.
const (
	SubjectSensorReading = "thermalmgr.reading"
	SubjectSELEvent      = "sel.event"
)

// config holds the configuration for the thermal manager service.
type config struct {
	serviceName   string
	pollInterval  time.Duration
	stateFilePath string
	selFilePath   string
	cpuSensorName string
	broadcast     bool
	state         *bmc.State
	engine        *sensor.Engine
}

// Validate checks the configuration for consistency.
func (c *config) Validate() error {
	if c.serviceName == "" {
		return ErrNameEmpty
	}
	if c.pollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	if c.state == nil {
		return ErrStateNil
	}
	if c.engine == nil {
		return ErrEngineNil
	}
	if c.stateFilePath == "" || c.selFilePath == "" {
		return ErrInvalidPath
	}
	return nil
}

// Option represents a configuration option for the thermal manager.
type Option interface {
	apply(*config)
}

type serviceNameOption struct {
	name string
}

func (o *serviceNameOption) apply(c *config) {
	c.serviceName = o.name
}

// WithServiceName sets the service name.
func WithServiceName(name string) Option {
	return &serviceNameOption{name: name}
}

type pollIntervalOption struct {
	d time.Duration
}

func (o *pollIntervalOption) apply(c *config) {
	c.pollInterval = o.d
}

// WithPollInterval sets the control tick period.
func WithPollInterval(d time.Duration) Option {
	return &pollIntervalOption{d: d}
}

type stateFileOption struct {
	path string
}

func (o *stateFileOption) apply(c *config) {
	c.stateFilePath = o.path
}

// WithStateFilePath sets where the state snapshot is exported.
func WithStateFilePath(path string) Option {
	return &stateFileOption{path: path}
}

type selFileOption struct {
	path string
}

func (o *selFileOption) apply(c *config) {
	c.selFilePath = o.path
}

// WithSELFilePath sets where the SEL document is exported.
func WithSELFilePath(path string) Option {
	return &selFileOption{path: path}
}

type cpuSensorOption struct {
	name string
}

func (o *cpuSensorOption) apply(c *config) {
	c.cpuSensorName = o.name
}

// WithCPUSensorName sets which sensor drives the PID loop.
func WithCPUSensorName(name string) Option {
	return &cpuSensorOption{name: name}
}

type broadcastOption struct {
	enabled bool
}

func (o *broadcastOption) apply(c *config) {
	c.broadcast = o.enabled
}

// WithBroadcast controls whether readings and SEL events are published
// on the IPC bus.
func WithBroadcast(enabled bool) Option {
	return &broadcastOption{enabled: enabled}
}

type stateOption struct {
	state *bmc.State
}

func (o *stateOption) apply(c *config) {
	c.state = o.state
}

// WithState attaches the shared BMC state.
func WithState(state *bmc.State) Option {
	return &stateOption{state: state}
}

type engineOption struct {
	engine *sensor.Engine
}

func (o *engineOption) apply(c *config) {
	c.engine = o.engine
}

// WithEngine attaches the sensor simulation engine.
func WithEngine(engine *sensor.Engine) Option {
	return &engineOption{engine: engine}
}
