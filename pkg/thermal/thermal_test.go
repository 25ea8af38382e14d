// SPDX-License-Identifier: BSD-3-Clause

package thermal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	pid := New(2.0, 0.1, 0.5, 65.0)

	assert.InDelta(t, 2.0, pid.Kp, 1e-9)
	assert.InDelta(t, 0.1, pid.Ki, 1e-9)
	assert.InDelta(t, 0.5, pid.Kd, 1e-9)
	assert.InDelta(t, 65.0, pid.Setpoint, 1e-9)
	assert.Zero(t, pid.Integral)
	assert.Zero(t, pid.PrevError)
	assert.InDelta(t, 30.0, pid.Output, 1e-9)
	assert.InDelta(t, DefaultMin, pid.OutputMin, 1e-9)
	assert.InDelta(t, DefaultMax, pid.OutputMax, 1e-9)
}

func TestComputeAtSetpoint(t *testing.T) {
	pid := New(3.0, 0.1, 1.5, 65.0)

	out := pid.Compute(65.0, 2.0)

	// Zero error leaves only the base duty offset.
	assert.InDelta(t, 40.0, out, 1e-9)
	assert.InDelta(t, out, pid.Output, 1e-9)
}

func TestComputeHotRaisesDuty(t *testing.T) {
	pid := New(3.0, 0.1, 1.5, 65.0)

	out := pid.Compute(75.0, 2.0)

	assert.Greater(t, out, 40.0)
	assert.LessOrEqual(t, out, pid.OutputMax)
}

func TestComputeNonPositiveDt(t *testing.T) {
	a := New(3.0, 0.1, 1.5, 65.0)
	b := New(3.0, 0.1, 1.5, 65.0)

	assert.InDelta(t, a.Compute(70.0, 0), b.Compute(70.0, 1.0), 1e-9)
}

func TestAntiWindupBoundsIntegral(t *testing.T) {
	pid := New(3.0, 0.1, 1.5, 65.0)
	span := pid.OutputMax - pid.OutputMin

	for i := 0; i < 500; i++ {
		pid.Compute(105.0, 2.0)
		assert.LessOrEqual(t, math.Abs(pid.Ki*pid.Integral), span+1e-9)
	}
}

func TestOutputAlwaysClamped(t *testing.T) {
	pid := New(3.0, 0.1, 1.5, 65.0)

	for _, temp := range []float64{-40.0, 5.0, 65.0, 105.0, 300.0} {
		out := pid.Compute(temp, 2.0)
		assert.GreaterOrEqual(t, out, pid.OutputMin)
		assert.LessOrEqual(t, out, pid.OutputMax)
	}
}

func TestResetThenComputeAtSetpoint(t *testing.T) {
	pid := New(3.0, 0.1, 1.5, 65.0)

	for i := 0; i < 50; i++ {
		pid.Compute(90.0, 2.0)
	}

	pid.Reset()
	assert.Zero(t, pid.Integral)
	assert.Zero(t, pid.PrevError)

	out := pid.Compute(65.0, 2.0)
	assert.InDelta(t, 40.0, out, 1e-9)
}

func TestSetOutputLimits(t *testing.T) {
	pid := New(3.0, 0.1, 1.5, 65.0)

	require.Error(t, pid.SetOutputLimits(80.0, 20.0))
	require.Error(t, pid.SetOutputLimits(50.0, 50.0))

	require.NoError(t, pid.SetOutputLimits(20.0, 60.0))
	assert.InDelta(t, 20.0, pid.OutputMin, 1e-9)
	assert.InDelta(t, 60.0, pid.OutputMax, 1e-9)

	// Current output re-clamps into the new range.
	pid.Output = 90.0
	require.NoError(t, pid.SetOutputLimits(20.0, 50.0))
	assert.InDelta(t, 50.0, pid.Output, 1e-9)
}

func TestValidate(t *testing.T) {
	pid := New(3.0, 0.1, 1.5, 65.0)
	require.NoError(t, pid.Validate())

	pid.Kp = math.NaN()
	assert.ErrorIs(t, pid.Validate(), ErrInvalidGains)

	pid = New(3.0, 0.1, 1.5, 65.0)
	pid.OutputMin = pid.OutputMax
	assert.ErrorIs(t, pid.Validate(), ErrOutputLimitsInvalid)
}
