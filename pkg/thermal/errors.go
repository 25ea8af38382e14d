// SPDX-License-Identifier: BSD-3-Clause

package thermal

import "errors"

var (
	// ErrInvalidGains indicates NaN or infinite PID parameters.
	ErrInvalidGains = errors.New("invalid PID gains")
	// ErrOutputLimitsInvalid indicates that the PID output limits are invalid.
	ErrOutputLimitsInvalid = errors.New("invalid PID output limits")
)
