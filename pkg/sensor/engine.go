// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"fmt"
	"time"

	"github.com/mini-bmc/mini-bmc/pkg/sel"
)

// Thermal model constants: a fixed simulated workload heat plus a
// cooling effect proportional to fan duty. At 100% duty the cooling
// capacity exceeds the heat load, so the loop can always pull the
// temperature below base.
const (
	heatLoad     = 15.0
	coolCapacity = 25.0

	// First-order response factor; the value drifts toward its target
	// with a time constant of roughly ten poll cycles.
	driftAlpha = 0.1

	tempFloor   = 5.0
	tempCeiling = 105.0
)

// Engine advances the simulated hardware model one step per poll. It
// owns the configuration table and noise source; the readings themselves
// live in the shared BMC state.
//
// Poll mutates readings and appends to the SEL, so the state mutex must
// be held by the caller for the duration of the call.
type Engine struct {
	configs []Config
	noise   *noiseSource
}

// NewEngine validates the configuration table and creates an engine with
// a deterministic noise stream derived from seed.
func NewEngine(configs []Config, seed int64) (*Engine, error) {
	if len(configs) == 0 {
		return nil, ErrNoSensors
	}
	for _, c := range configs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: sensor %q: %w", ErrInvalidConfig, c.Name, err)
		}
	}
	return &Engine{
		configs: configs,
		noise:   newNoiseSource(seed),
	}, nil
}

// Readings materializes the initial reading set from the configuration
// table: values at base, status OK.
func (e *Engine) Readings() []Reading {
	now := time.Now()
	out := make([]Reading, len(e.configs))
	for i, c := range e.configs {
		out[i] = Reading{
			Name:        c.Name,
			Type:        c.Type,
			Value:       c.BaseValue,
			MinValid:    c.MinValid,
			MaxWarning:  c.MaxWarning,
			MaxCritical: c.MaxCritical,
			Status:      StatusOK,
			LastUpdated: now,
		}
	}
	return out
}

// Poll advances every sensor one simulation step given the current fan
// duty, reclassifies status, and logs a SEL entry for each transition
// into a non-OK state.
func (e *Engine) Poll(readings []Reading, fanDuty float64, log *sel.Log) {
	now := time.Now()

	for i := range readings {
		if i >= len(e.configs) {
			break
		}
		r := &readings[i]
		cfg := e.configs[i]
		oldStatus := r.Status

		switch r.Type {
		case TypeTemperature:
			// First-order thermal response: drift toward the
			// equilibrium set by workload heat minus fan cooling.
			cooling := (fanDuty / 100.0) * coolCapacity
			target := cfg.BaseValue + heatLoad - cooling
			r.Value += (target - r.Value) * driftAlpha
			r.Value += e.noise.gaussian(cfg.NoiseStddev)
			if r.Value < tempFloor {
				r.Value = tempFloor
			}
			if r.Value > tempCeiling {
				r.Value = tempCeiling
			}

		case TypeVoltage:
			r.Value = cfg.BaseValue + e.noise.gaussian(cfg.NoiseStddev)
			if r.Value < 0 {
				r.Value = 0
			}

		case TypeFanRPM:
			// Tach follows commanded duty; max speed is twice nominal.
			maxRPM := cfg.BaseValue * 2.0
			r.Value = (fanDuty/100.0)*maxRPM + e.noise.gaussian(cfg.NoiseStddev)
			if r.Value < 0 {
				r.Value = 0
			}
		}

		r.LastUpdated = now
		r.Status = Classify(r)

		if r.Status != oldStatus && r.Status != StatusOK {
			sev := sel.SeverityWarning
			if r.Status == StatusCritical {
				sev = sel.SeverityCritical
			}
			log.Add(sev, "Sensor", fmt.Sprintf("%s transitioned to %s (value: %.2f)",
				r.Name, r.Status, r.Value))
		}
	}
}
