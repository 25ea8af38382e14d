// SPDX-License-Identifier: BSD-3-Clause

package thermal

import (
	"math"
)

// Default tuning used by the operator for the CPU thermal loop.
// The values mirror common phosphor-pid-control configurations:
// moderate proportional response, slow integral, moderate damping.
const (
	DefaultKp       = 3.0
	DefaultKi       = 0.1
	DefaultKd       = 1.5
	DefaultSetpoint = 65.0
	DefaultMin      = 10.0
	DefaultMax      = 100.0
)

// baseDuty is the output offset applied after the PID terms so that the
// fan sits mid-range at zero error instead of stalling.
const baseDuty = 40.0

// initialOutput is the duty cycle reported before the first compute.
const initialOutput = 30.0

// PID is a proportional-integral-derivative controller producing a fan
// duty cycle from a temperature error. The error convention is reversed
// from a typical PID: error = current - setpoint, so a positive error
// (too hot) raises the output (more cooling).
//
// PID performs no locking. When embedded in shared state, the owner's
// mutex must be held across Compute.
type PID struct {
	Kp        float64
	Ki        float64
	Kd        float64
	Setpoint  float64
	Integral  float64
	PrevError float64
	Output    float64
	OutputMin float64
	OutputMax float64
}

// New creates a PID controller with the given gains and setpoint and the
// default output bounds.
func New(kp, ki, kd, setpoint float64) *PID {
	return &PID{
		Kp:        kp,
		Ki:        ki,
		Kd:        kd,
		Setpoint:  setpoint,
		Output:    initialOutput,
		OutputMin: DefaultMin,
		OutputMax: DefaultMax,
	}
}

// Validate checks the controller parameters for NaN/Inf gains and
// inverted output bounds.
func (p *PID) Validate() error {
	for _, g := range []float64{p.Kp, p.Ki, p.Kd, p.Setpoint} {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return ErrInvalidGains
		}
	}
	if p.OutputMin >= p.OutputMax {
		return ErrOutputLimitsInvalid
	}
	return nil
}

// Compute advances the controller by one sample of duration dt seconds
// and returns the new output. A non-positive dt is treated as 1.0.
//
// The integral term uses the clamping form of anti-windup: the raw
// integral is bounded so that |Ki*Integral| never exceeds the output
// span. Without this, a saturated fan lets the integral accumulate and
// the duty stays pinned long after the temperature recovers.
func (p *PID) Compute(current, dt float64) float64 {
	if dt <= 0 {
		dt = 1.0
	}

	err := current - p.Setpoint

	pTerm := p.Kp * err

	p.Integral += err * dt
	if p.Ki > 0 {
		limit := (p.OutputMax - p.OutputMin) / p.Ki
		if p.Integral > limit {
			p.Integral = limit
		}
		if p.Integral < -limit {
			p.Integral = -limit
		}
	}
	iTerm := p.Ki * p.Integral

	dTerm := p.Kd * (err - p.PrevError) / dt
	p.PrevError = err

	out := pTerm + iTerm + dTerm + baseDuty

	if out < p.OutputMin {
		out = p.OutputMin
	}
	if out > p.OutputMax {
		out = p.OutputMax
	}

	p.Output = out
	return out
}

// Reset clears the accumulated integral and derivative history. Intended
// for mode transitions so stale accumulation does not kick the output.
func (p *PID) Reset() {
	p.Integral = 0
	p.PrevError = 0
}

// SetOutputLimits updates the output bounds and re-clamps the current
// output into the new range.
func (p *PID) SetOutputLimits(min, max float64) error {
	if min >= max {
		return ErrOutputLimitsInvalid
	}
	p.OutputMin = min
	p.OutputMax = max

	if p.Output < min {
		p.Output = min
	}
	if p.Output > max {
		p.Output = max
	}
	return nil
}
