// SPDX-License-Identifier: BSD-3-Clause

// Package sensor simulates the hardware a BMC would normally reach over
// I2C, ADC and tach inputs: temperatures follow a first-order thermal
// model coupled to the commanded fan duty, voltage rails jitter around
// nominal, and fan tachometers track duty. Gaussian noise comes from a
// seeded Box-Muller source so simulations are reproducible.
//
// The engine also owns status classification against per-sensor
// thresholds and emits a SEL entry whenever a sensor transitions into a
// degraded state.
package sensor
