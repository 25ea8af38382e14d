// SPDX-License-Identifier: BSD-3-Clause

package bmc

import (
	"sync"
	"sync/atomic"

	"github.com/mini-bmc/mini-bmc/pkg/secureboot"
	"github.com/mini-bmc/mini-bmc/pkg/sel"
	"github.com/mini-bmc/mini-bmc/pkg/sensor"
	"github.com/mini-bmc/mini-bmc/pkg/thermal"
)

// Default file paths for state export. Downstream management software
// (the Redfish reader) consumes these; the services accept overrides.
const (
	DefaultStateFilePath = "/tmp/bmc_state.json"
	DefaultSELFilePath   = "/tmp/bmc_sel.json"
)

// initialFanDuty is the commanded duty before the first PID tick.
const initialFanDuty = 30.0

// State is the shared record every subsystem operates on: the sensor
// array, the PID controller, the commanded fan duty, the SEL, and the
// secure-boot chain. One coarse mutex serializes all mutation; any read
// needing a consistent multi-field view must hold it too. The running
// flag is the single exception: it is an atomic with one writer, read
// lock-free by loops that only need a shutdown signal.
type State struct {
	mu sync.Mutex

	Sensors        []sensor.Reading
	PID            *thermal.PID
	FanDutyPercent float64

	SEL *sel.Log

	SecureBoot       *secureboot.Chain
	SecureBootPassed bool

	running atomic.Bool
}

// NewState creates the shared record with an empty SEL and the initial
// fan duty. Sensors, PID and the secure-boot chain are attached by the
// operator's init phases.
func NewState() *State {
	s := &State{
		FanDutyPercent: initialFanDuty,
		SEL:            sel.NewLog(),
	}
	s.running.Store(true)
	return s
}

// Lock acquires the state mutex.
func (s *State) Lock() {
	s.mu.Lock()
}

// Unlock releases the state mutex.
func (s *State) Unlock() {
	s.mu.Unlock()
}

// Running reports whether the daemon is still in its operational phase.
// Safe without the state lock.
func (s *State) Running() bool {
	return s.running.Load()
}

// SetRunning flips the run flag. Called by the operator only.
func (s *State) SetRunning(v bool) {
	s.running.Store(v)
}

// CPUSensorIndex returns the index of the named CPU temperature sensor,
// falling back to sensor 0 when absent. Callers must hold the lock.
func (s *State) CPUSensorIndex(name string) int {
	for i := range s.Sensors {
		if s.Sensors[i].Name == name {
			return i
		}
	}
	return 0
}
