// SPDX-License-Identifier: BSD-3-Clause

package bmc

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mini-bmc/mini-bmc/pkg/secureboot"
	"github.com/mini-bmc/mini-bmc/pkg/sel"
	"github.com/mini-bmc/mini-bmc/pkg/sensor"
	"github.com/mini-bmc/mini-bmc/pkg/thermal"
)

func newTestState(t *testing.T) *State {
	t.Helper()

	st := NewState()

	engine, err := sensor.NewEngine(sensor.DefaultConfigs(), 1)
	require.NoError(t, err)
	st.Sensors = engine.Readings()
	st.PID = thermal.New(3.0, 0.1, 1.5, 65.0)

	chain := secureboot.NewChain(filepath.Join(t.TempDir(), "fw"))
	require.NoError(t, chain.Init(st.SEL))
	st.SecureBoot = chain
	st.SecureBootPassed = chain.Verify(st.SEL)

	return st
}

func TestNewStateDefaults(t *testing.T) {
	st := NewState()

	assert.True(t, st.Running())
	assert.InDelta(t, 30.0, st.FanDutyPercent, 1e-9)
	assert.NotNil(t, st.SEL)
	assert.Equal(t, uint32(1), st.SEL.NextID())
}

func TestRunningFlag(t *testing.T) {
	st := NewState()

	st.SetRunning(false)
	assert.False(t, st.Running())
}

func TestCPUSensorIndex(t *testing.T) {
	st := newTestState(t)

	assert.Equal(t, 0, st.CPUSensorIndex("CPU_Temp"))
	assert.Equal(t, 7, st.CPUSensorIndex("SYS_Fan"))
	// Unknown names fall back to sensor 0.
	assert.Equal(t, 0, st.CPUSensorIndex("nope"))
}

func TestSnapshotShape(t *testing.T) {
	st := newTestState(t)

	data, err := st.EncodeSnapshot()
	require.NoError(t, err)

	var doc struct {
		Sensors []struct {
			Name        string  `json:"name"`
			Type        string  `json:"type"`
			Value       float64 `json:"value"`
			Status      string  `json:"status"`
			MinValid    float64 `json:"min_valid"`
			MaxWarning  float64 `json:"max_warning"`
			MaxCritical float64 `json:"max_critical"`
			LastUpdated int64   `json:"last_updated"`
		} `json:"sensors"`
		Thermal struct {
			FanDutyPercent float64 `json:"fan_duty_percent"`
			PID            struct {
				Kp        float64 `json:"kp"`
				Ki        float64 `json:"ki"`
				Kd        float64 `json:"kd"`
				Setpoint  float64 `json:"setpoint"`
				Output    float64 `json:"output"`
				Integral  float64 `json:"integral"`
				PrevError float64 `json:"prev_error"`
			} `json:"pid"`
		} `json:"thermal"`
		SecureBoot struct {
			OverallPassed bool `json:"overall_passed"`
			Images        []struct {
				Name         string `json:"name"`
				ExpectedHash string `json:"expected_hash"`
				ActualHash   string `json:"actual_hash"`
				Verified     bool   `json:"verified"`
				Passed       bool   `json:"passed"`
			} `json:"images"`
		} `json:"secure_boot"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Len(t, doc.Sensors, 8)
	assert.Equal(t, "CPU_Temp", doc.Sensors[0].Name)
	assert.Equal(t, "Temperature", doc.Sensors[0].Type)
	assert.Equal(t, "OK", doc.Sensors[0].Status)
	assert.NotZero(t, doc.Sensors[0].LastUpdated)

	assert.InDelta(t, 30.0, doc.Thermal.FanDutyPercent, 1e-9)
	assert.InDelta(t, 65.0, doc.Thermal.PID.Setpoint, 1e-9)
	assert.InDelta(t, 3.0, doc.Thermal.PID.Kp, 1e-9)

	assert.True(t, doc.SecureBoot.OverallPassed)
	require.Len(t, doc.SecureBoot.Images, 4)
	assert.Equal(t, "bootloader", doc.SecureBoot.Images[0].Name)
	assert.Len(t, doc.SecureBoot.Images[0].ExpectedHash, 64)
	assert.True(t, doc.SecureBoot.Images[0].Verified)
}

func TestEncodeSELShape(t *testing.T) {
	st := NewState()
	st.Lock()
	st.SEL.Add(sel.SeverityInfo, "System", "BMC daemon starting up")
	st.Unlock()

	data, err := st.EncodeSEL()
	require.NoError(t, err)

	var doc struct {
		Entries []struct {
			ID       uint32 `json:"id"`
			Severity string `json:"severity"`
			Source   string `json:"source"`
			Message  string `json:"message"`
		} `json:"entries"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, 1, doc.Count)
	assert.Equal(t, "BMC daemon starting up", doc.Entries[0].Message)
	assert.Equal(t, "Info", doc.Entries[0].Severity)
}
