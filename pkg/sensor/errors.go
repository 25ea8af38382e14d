// SPDX-License-Identifier: BSD-3-Clause

package sensor

import "errors"

var (
	// ErrNoSensors indicates an empty sensor configuration table.
	ErrNoSensors = errors.New("no sensors configured")
	// ErrInvalidConfig indicates a malformed sensor configuration entry.
	ErrInvalidConfig = errors.New("invalid sensor configuration")
	// ErrInvalidName indicates an empty or oversized sensor name.
	ErrInvalidName = errors.New("invalid sensor name")
	// ErrThresholdOrder indicates thresholds violating min <= warning <= critical.
	ErrThresholdOrder = errors.New("sensor thresholds out of order")
	// ErrInvalidNoise indicates a negative noise standard deviation.
	ErrInvalidNoise = errors.New("invalid noise standard deviation")
)
