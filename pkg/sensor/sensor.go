// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"time"
)

// Type identifies the physical quantity a sensor reports.
type Type uint8

const (
	TypeTemperature Type = iota // Celsius
	TypeVoltage                 // Volts
	TypeFanRPM                  // RPM
	TypePower                   // Watts
)

// String returns the type name used in the state snapshot.
func (t Type) String() string {
	switch t {
	case TypeTemperature:
		return "Temperature"
	case TypeVoltage:
		return "Voltage"
	case TypeFanRPM:
		return "Fan"
	case TypePower:
		return "Power"
	default:
		return "Unknown"
	}
}

// Status is the health classification of a reading against its thresholds.
type Status uint8

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusAbsent
)

// String returns the status name used in the state snapshot and SEL.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "Warning"
	case StatusCritical:
		return "Critical"
	case StatusAbsent:
		return "Absent"
	default:
		return "Unknown"
	}
}

// maxNameLen bounds sensor names in the shared state.
const maxNameLen = 63

// Reading is the live state of one sensor. Readings are created once at
// init from the configuration table and mutated only by the engine while
// the state lock is held.
type Reading struct {
	Name        string
	Type        Type
	Value       float64
	MinValid    float64
	MaxWarning  float64
	MaxCritical float64
	Status      Status
	LastUpdated time.Time
}

// Config declares one simulated sensor: its identity, nominal value,
// noise magnitude and status thresholds.
type Config struct {
	Name        string
	Type        Type
	BaseValue   float64
	NoiseStddev float64
	MinValid    float64
	MaxWarning  float64
	MaxCritical float64
}

// Validate checks the threshold ordering invariant and name bounds.
func (c Config) Validate() error {
	if c.Name == "" || len(c.Name) > maxNameLen {
		return ErrInvalidName
	}
	if c.MinValid > c.MaxWarning || c.MaxWarning > c.MaxCritical {
		return ErrThresholdOrder
	}
	if c.NoiseStddev < 0 {
		return ErrInvalidNoise
	}
	return nil
}

// DefaultConfigs returns the built-in sensor table: three temperatures,
// three voltage rails and two fan tachometers, with thresholds typical
// of a single-socket server board.
func DefaultConfigs() []Config {
	return []Config{
		{Name: "CPU_Temp", Type: TypeTemperature, BaseValue: 55.0, NoiseStddev: 1.5, MinValid: 10.0, MaxWarning: 75.0, MaxCritical: 90.0},
		{Name: "Inlet_Temp", Type: TypeTemperature, BaseValue: 28.0, NoiseStddev: 0.8, MinValid: 5.0, MaxWarning: 38.0, MaxCritical: 45.0},
		{Name: "PCH_Temp", Type: TypeTemperature, BaseValue: 48.0, NoiseStddev: 1.0, MinValid: 10.0, MaxWarning: 70.0, MaxCritical: 85.0},

		{Name: "VCore", Type: TypeVoltage, BaseValue: 1.05, NoiseStddev: 0.02, MinValid: 0.90, MaxWarning: 1.15, MaxCritical: 1.25},
		{Name: "V3.3_Stdby", Type: TypeVoltage, BaseValue: 3.30, NoiseStddev: 0.03, MinValid: 3.10, MaxWarning: 3.50, MaxCritical: 3.60},
		{Name: "V12_Main", Type: TypeVoltage, BaseValue: 12.00, NoiseStddev: 0.08, MinValid: 11.40, MaxWarning: 12.60, MaxCritical: 13.00},

		{Name: "CPU_Fan", Type: TypeFanRPM, BaseValue: 3000.0, NoiseStddev: 50.0, MinValid: 500.0, MaxWarning: 6000.0, MaxCritical: 7000.0},
		{Name: "SYS_Fan", Type: TypeFanRPM, BaseValue: 2500.0, NoiseStddev: 40.0, MinValid: 400.0, MaxWarning: 5000.0, MaxCritical: 6000.0},
	}
}

// Classify evaluates a reading against its thresholds.
//
// Fans are direction-inverted: a stalled fan (below min_valid) is
// Critical, an overspeeding one degrades through Warning to Critical.
// For everything else a high value is bad and a value below min_valid
// signals a measurement problem (Warning).
func Classify(r *Reading) Status {
	if r.Type == TypeFanRPM {
		if r.Value < r.MinValid || r.Value > r.MaxCritical {
			return StatusCritical
		}
		if r.Value > r.MaxWarning {
			return StatusWarning
		}
		return StatusOK
	}

	if r.Value >= r.MaxCritical {
		return StatusCritical
	}
	if r.Value >= r.MaxWarning || r.Value < r.MinValid {
		return StatusWarning
	}
	return StatusOK
}
