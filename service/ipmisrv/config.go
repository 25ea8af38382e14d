// SPDX-License-Identifier: BSD-3-Clause

package ipmisrv

import (
	"github.com/mini-bmc/mini-bmc/pkg/bmc"
)

// Defaults for the IPMI listener.
const (
	DefaultServiceName = "ipmisrv"
	DefaultSocketPath  = "/tmp/bmc_ipmi.sock"
)

// config holds the configuration for the IPMI server service.
type config struct {
	serviceName string
	socketPath  string
	state       *bmc.State
}

// Validate checks the configuration for consistency.
func (c *config) Validate() error {
	if c.serviceName == "" {
		return ErrNameEmpty
	}
	if c.socketPath == "" {
		return ErrInvalidSocketPath
	}
	if c.state == nil {
		return ErrStateNil
	}
	return nil
}

// Option represents a configuration option for the IPMI server service.
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

type socketPathOption struct {
	path string
}

func (o *socketPathOption) apply(c *config) {
	c.socketPath = o.path
}

// WithSocketPath sets the unix socket path the listener binds.
func WithSocketPath(path string) Option {
	return &socketPathOption{path: path}
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
