// SPDX-License-Identifier: BSD-3-Clause

package thermalmgr

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mini-bmc/mini-bmc/pkg/bmc"
	"github.com/mini-bmc/mini-bmc/pkg/log"
	"github.com/mini-bmc/mini-bmc/pkg/sel"
	"github.com/mini-bmc/mini-bmc/pkg/sensor"
	"github.com/mini-bmc/mini-bmc/pkg/thermal"
)

func quietConfigs() []sensor.Config {
	configs := sensor.DefaultConfigs()
	for i := range configs {
		configs[i].NoiseStddev = 0
	}
	return configs
}

func newTestSetup(t *testing.T) (*bmc.State, *sensor.Engine) {
	t.Helper()

	st := bmc.NewState()
	engine, err := sensor.NewEngine(quietConfigs(), 1)
	require.NoError(t, err)

	st.Sensors = engine.Readings()
	st.PID = thermal.New(3.0, 0.1, 1.5, 65.0)

	st.Lock()
	st.SEL.Add(sel.SeverityInfo, "System", "BMC daemon starting up")
	st.Unlock()

	return st, engine
}

func TestValidateRequiresStateAndEngine(t *testing.T) {
	s := New()
	err := s.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestTickDrivesControlAndPersists(t *testing.T) {
	st, engine := newTestSetup(t)
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	selPath := filepath.Join(dir, "sel.json")

	s := New(
		WithState(st),
		WithEngine(engine),
		WithPollInterval(10*time.Millisecond),
		WithStateFilePath(statePath),
		WithSELFilePath(selPath),
		WithBroadcast(false),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, nil)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(statePath)
		return err == nil
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	err := <-done
	assert.True(t, err == nil || errors.Is(err, context.Canceled))

	b, err := os.ReadFile(statePath)
	require.NoError(t, err)

	var doc struct {
		Sensors []struct {
			Name string `json:"name"`
		} `json:"sensors"`
		Thermal struct {
			FanDutyPercent float64 `json:"fan_duty_percent"`
			PID            struct {
				Setpoint float64 `json:"setpoint"`
				Output   float64 `json:"output"`
			} `json:"pid"`
		} `json:"thermal"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))

	require.Len(t, doc.Sensors, 8)
	assert.Equal(t, "CPU_Temp", doc.Sensors[0].Name)
	assert.InDelta(t, 65.0, doc.Thermal.PID.Setpoint, 1e-9)

	// The PID owns the commanded duty after the first tick.
	assert.InDelta(t, doc.Thermal.PID.Output, doc.Thermal.FanDutyPercent, 1e-9)
	assert.GreaterOrEqual(t, doc.Thermal.FanDutyPercent, 10.0)
	assert.LessOrEqual(t, doc.Thermal.FanDutyPercent, 100.0)

	selBytes, err := os.ReadFile(selPath)
	require.NoError(t, err)
	var selDoc struct {
		Entries []struct {
			Message string `json:"message"`
		} `json:"entries"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(selBytes, &selDoc))
	require.NotZero(t, selDoc.Count)
	assert.Equal(t, "BMC daemon starting up", selDoc.Entries[0].Message)
}

func TestTickOverwritesManualDuty(t *testing.T) {
	st, engine := newTestSetup(t)
	dir := t.TempDir()

	s := New(
		WithState(st),
		WithEngine(engine),
		WithPollInterval(10*time.Millisecond),
		WithStateFilePath(filepath.Join(dir, "state.json")),
		WithSELFilePath(filepath.Join(dir, "sel.json")),
		WithBroadcast(false),
	)

	s.logger = log.GetGlobalLogger().With("service", "thermalmgr-test")

	// Simulate an IPMI manual fan set between ticks.
	st.Lock()
	st.FanDutyPercent = 99.0
	st.Unlock()

	s.tick(context.Background(), 0)

	st.Lock()
	duty := st.FanDutyPercent
	output := st.PID.Output
	st.Unlock()

	assert.InDelta(t, output, duty, 1e-9)
	assert.NotEqual(t, 99.0, duty)
}
