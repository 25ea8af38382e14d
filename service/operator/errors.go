// SPDX-License-Identifier: BSD-3-Clause

package operator

import "errors"

var (
	// ErrInvalidConfiguration indicates an invalid operator configuration.
	ErrInvalidConfiguration = errors.New("invalid operator configuration")
	// ErrNameEmpty indicates an empty operator name.
	ErrNameEmpty = errors.New("operator name cannot be empty")
	// ErrInvalidTimeout indicates a non-positive timeout or interval.
	ErrInvalidTimeout = errors.New("timeouts and intervals must be positive")
	// ErrNoSensors indicates an empty sensor table.
	ErrNoSensors = errors.New("sensor table cannot be empty")
	// ErrPanicked indicates the operator recovered from a panic.
	ErrPanicked = errors.New("panicked")
	// ErrSensorInit indicates the sensor engine could not be initialized.
	ErrSensorInit = errors.New("failed to initialize sensors")
	// ErrPIDInit indicates the PID controller could not be initialized.
	ErrPIDInit = errors.New("failed to initialize PID controller")
	// ErrSecureBootInit indicates the secure boot chain could not be initialized.
	ErrSecureBootInit = errors.New("failed to initialize secure boot")
	// ErrAddProcess indicates a service could not be added to the supervision tree.
	ErrAddProcess = errors.New("failed to add process")
)
