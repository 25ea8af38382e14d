// SPDX-License-Identifier: BSD-3-Clause

// Package thermal implements the closed-loop PID fan controller used by
// the thermal manager. The controller maps a CPU temperature error to a
// fan duty cycle with integral anti-windup (clamping form) and hard
// output bounds, plus a base duty offset so zero error holds the fan at
// a mid-range speed.
//
// Usage:
//
//	pid := thermal.New(thermal.DefaultKp, thermal.DefaultKi, thermal.DefaultKd, 65.0)
//	duty := pid.Compute(cpuTemp, 2.0)
//
// The controller is a plain struct with exported fields so the state
// snapshot can serialize gains and accumulated terms directly.
package thermal
