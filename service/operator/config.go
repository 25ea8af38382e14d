// SPDX-License-Identifier: BSD-3-Clause

package operator

import (
	"time"

	"github.com/mini-bmc/mini-bmc/pkg/bmc"
	"github.com/mini-bmc/mini-bmc/pkg/secureboot"
	"github.com/mini-bmc/mini-bmc/pkg/sensor"
	"github.com/mini-bmc/mini-bmc/pkg/thermal"
	"github.com/mini-bmc/mini-bmc/service"
	"github.com/mini-bmc/mini-bmc/service/ipmisrv"
	"github.com/mini-bmc/mini-bmc/service/thermalmgr"
)

// Defaults for the operator.
const (
	DefaultServiceName  = "operator"
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = thermalmgr.DefaultPollInterval
	DefaultIDDir        = "/var/lib/mini-bmc"
)

type config struct {
	name        string
	id          string
	idDir       string
	disableLogo bool
	customLogo  string
	timeout     time.Duration

	pollInterval  time.Duration
	stateFilePath string
	selFilePath   string
	socketPath    string
	imageDir      string

	sensorConfigs []sensor.Config
	sensorSeed    int64

	kp, ki, kd float64
	setpoint   float64
	outputMin  float64
	outputMax  float64

	enableIPC         bool
	removeFilesOnExit bool

	thermalOpts []thermalmgr.Option
	ipmiOpts    []ipmisrv.Option

	extraServices []service.Service
}

func newConfig() *config {
	return &config{
		name:          DefaultServiceName,
		idDir:         DefaultIDDir,
		timeout:       DefaultTimeout,
		pollInterval:  DefaultPollInterval,
		stateFilePath: bmc.DefaultStateFilePath,
		selFilePath:   bmc.DefaultSELFilePath,
		socketPath:    ipmisrv.DefaultSocketPath,
		imageDir:      secureboot.DefaultImageDir,
		sensorConfigs: sensor.DefaultConfigs(),
		sensorSeed:    time.Now().UnixNano(),
		kp:            thermal.DefaultKp,
		ki:            thermal.DefaultKi,
		kd:            thermal.DefaultKd,
		setpoint:      thermal.DefaultSetpoint,
		outputMin:     thermal.DefaultMin,
		outputMax:     thermal.DefaultMax,
		enableIPC:     true,
	}
}

// Validate checks the configuration for consistency.
func (c *config) Validate() error {
	if c.name == "" {
		return ErrNameEmpty
	}
	if c.timeout <= 0 || c.pollInterval <= 0 {
		return ErrInvalidTimeout
	}
	if len(c.sensorConfigs) == 0 {
		return ErrNoSensors
	}
	return nil
}

// Option represents a configuration option for the operator.
type Option interface {
	apply(*config)
}

type nameOption struct {
	name string
}

func (o *nameOption) apply(c *config) {
	c.name = o.name
}

// WithName sets the operator name.
func WithName(name string) Option {
	return &nameOption{name: name}
}

type idOption struct {
	id string
}

func (o *idOption) apply(c *config) {
	c.id = o.id
}

// WithID sets the instance identifier, bypassing the persistent id file.
func WithID(id string) Option {
	return &idOption{id: id}
}

type idDirOption struct {
	dir string
}

func (o *idDirOption) apply(c *config) {
	c.idDir = o.dir
}

// WithIDDir sets where the persistent instance id is stored.
func WithIDDir(dir string) Option {
	return &idDirOption{dir: dir}
}

type disableLogoOption struct{}

func (o *disableLogoOption) apply(c *config) {
	c.disableLogo = true
}

// WithoutLogo suppresses the startup banner.
func WithoutLogo() Option {
	return &disableLogoOption{}
}

type customLogoOption struct {
	logo string
}

func (o *customLogoOption) apply(c *config) {
	c.customLogo = o.logo
}

// WithCustomLogo replaces the default startup banner.
func WithCustomLogo(logo string) Option {
	return &customLogoOption{logo: logo}
}

type timeoutOption struct {
	d time.Duration
}

func (o *timeoutOption) apply(c *config) {
	c.timeout = o.d
}

// WithTimeout sets the supervision shutdown timeout per child.
func WithTimeout(d time.Duration) Option {
	return &timeoutOption{d: d}
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

// WithStateFilePath sets the state snapshot export path.
func WithStateFilePath(path string) Option {
	return &stateFileOption{path: path}
}

type selFileOption struct {
	path string
}

func (o *selFileOption) apply(c *config) {
	c.selFilePath = o.path
}

// WithSELFilePath sets the SEL export path.
func WithSELFilePath(path string) Option {
	return &selFileOption{path: path}
}

type socketPathOption struct {
	path string
}

func (o *socketPathOption) apply(c *config) {
	c.socketPath = o.path
}

// WithSocketPath sets the IPMI unix socket path.
func WithSocketPath(path string) Option {
	return &socketPathOption{path: path}
}

type imageDirOption struct {
	dir string
}

func (o *imageDirOption) apply(c *config) {
	c.imageDir = o.dir
}

// WithImageDir sets the firmware blob directory.
func WithImageDir(dir string) Option {
	return &imageDirOption{dir: dir}
}

type sensorConfigsOption struct {
	configs []sensor.Config
}

func (o *sensorConfigsOption) apply(c *config) {
	c.sensorConfigs = o.configs
}

// WithSensorConfigs replaces the default sensor table.
func WithSensorConfigs(configs ...sensor.Config) Option {
	return &sensorConfigsOption{configs: configs}
}

type sensorSeedOption struct {
	seed int64
}

func (o *sensorSeedOption) apply(c *config) {
	c.sensorSeed = o.seed
}

// WithSensorSeed fixes the simulation noise seed for reproducible runs.
func WithSensorSeed(seed int64) Option {
	return &sensorSeedOption{seed: seed}
}

type pidTuningOption struct {
	kp, ki, kd, setpoint float64
}

func (o *pidTuningOption) apply(c *config) {
	c.kp = o.kp
	c.ki = o.ki
	c.kd = o.kd
	c.setpoint = o.setpoint
}

// WithPIDTuning sets the thermal loop gains and setpoint.
func WithPIDTuning(kp, ki, kd, setpoint float64) Option {
	return &pidTuningOption{kp: kp, ki: ki, kd: kd, setpoint: setpoint}
}

type outputLimitsOption struct {
	min, max float64
}

func (o *outputLimitsOption) apply(c *config) {
	c.outputMin = o.min
	c.outputMax = o.max
}

// WithOutputLimits sets the fan duty bounds.
func WithOutputLimits(min, max float64) Option {
	return &outputLimitsOption{min: min, max: max}
}

type withoutIPCOption struct{}

func (o *withoutIPCOption) apply(c *config) {
	c.enableIPC = false
}

// WithoutIPC disables the embedded message bus; services run without
// broadcasts.
func WithoutIPC() Option {
	return &withoutIPCOption{}
}

type removeFilesOption struct {
	remove bool
}

func (o *removeFilesOption) apply(c *config) {
	c.removeFilesOnExit = o.remove
}

// WithRemoveFilesOnExit controls whether the exported JSON files are
// deleted during shutdown. Off by default so the final state survives
// for post-mortem inspection.
func WithRemoveFilesOnExit(remove bool) Option {
	return &removeFilesOption{remove: remove}
}

type thermalOptsOption struct {
	opts []thermalmgr.Option
}

func (o *thermalOptsOption) apply(c *config) {
	c.thermalOpts = append(c.thermalOpts, o.opts...)
}

// WithThermalmgr passes additional options to the thermal manager.
func WithThermalmgr(opts ...thermalmgr.Option) Option {
	return &thermalOptsOption{opts: opts}
}

type ipmiOptsOption struct {
	opts []ipmisrv.Option
}

func (o *ipmiOptsOption) apply(c *config) {
	c.ipmiOpts = append(c.ipmiOpts, o.opts...)
}

// WithIpmisrv passes additional options to the IPMI listener.
func WithIpmisrv(opts ...ipmisrv.Option) Option {
	return &ipmiOptsOption{opts: opts}
}

type extraServicesOption struct {
	services []service.Service
}

func (o *extraServicesOption) apply(c *config) {
	c.extraServices = append(c.extraServices, o.services...)
}

// WithExtraServices adds services to the supervision tree.
func WithExtraServices(services ...service.Service) Option {
	return &extraServicesOption{services: services}
}
