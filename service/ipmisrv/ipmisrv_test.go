// SPDX-License-Identifier: BSD-3-Clause

package ipmisrv

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mini-bmc/mini-bmc/pkg/bmc"
	"github.com/mini-bmc/mini-bmc/pkg/ipmi"
	"github.com/mini-bmc/mini-bmc/pkg/sensor"
	"github.com/mini-bmc/mini-bmc/pkg/thermal"
)

func newTestState(t *testing.T) *bmc.State {
	t.Helper()

	st := bmc.NewState()
	engine, err := sensor.NewEngine(sensor.DefaultConfigs(), 1)
	require.NoError(t, err)
	st.Sensors = engine.Readings()
	st.PID = thermal.New(3.0, 0.1, 1.5, 65.0)
	return st
}

// startListener runs the service and waits for the socket to appear.
func startListener(t *testing.T, st *bmc.State) (*IPMISrv, string, context.CancelFunc, chan error) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "ipmi.sock")
	srv := New(
		WithState(st),
		WithSocketPath(socketPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, nil)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(socketPath)
		return err == nil
	}, 2*time.Second, 5*time.Millisecond)

	return srv, socketPath, cancel, done
}

func exchange(t *testing.T, socketPath string, req *ipmi.Request) *ipmi.Response {
	t.Helper()

	conn, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer conn.Close()

	buf, err := req.MarshalBinary()
	require.NoError(t, err)
	_, err = conn.Write(buf)
	require.NoError(t, err)

	respBuf := make([]byte, ipmi.ResponseSize)
	_, err = io.ReadFull(conn, respBuf)
	require.NoError(t, err)

	resp := &ipmi.Response{}
	require.NoError(t, resp.UnmarshalBinary(respBuf))
	return resp
}

func TestListenerServesSensorReading(t *testing.T) {
	st := newTestState(t)
	st.Lock()
	st.Sensors[0].Value = 55.0
	st.Unlock()

	srv, socketPath, cancel, done := startListener(t, st)
	defer cancel()

	assert.Equal(t, StateListening, srv.State())

	req := &ipmi.Request{NetFn: ipmi.NetFnSensor, Cmd: ipmi.CmdGetSensorReading, DataLen: 1}
	resp := exchange(t, socketPath, req)

	assert.Equal(t, ipmi.CCOK, resp.CompletionCode)
	assert.Equal(t, uint8(4), resp.DataLen)
	assert.Equal(t, byte(0x37), resp.Data[0])
	assert.Equal(t, byte(0x00), resp.Data[1])

	cancel()
	err := <-done
	assert.True(t, err == nil || errors.Is(err, context.Canceled))
}

func TestListenerRejectsUnknownCommand(t *testing.T) {
	st := newTestState(t)
	_, socketPath, cancel, done := startListener(t, st)
	defer func() {
		cancel()
		<-done
	}()

	req := &ipmi.Request{NetFn: ipmi.NetFnApp, Cmd: 0x99}
	resp := exchange(t, socketPath, req)

	assert.Equal(t, ipmi.CCInvalidCommand, resp.CompletionCode)
	assert.Equal(t, uint8(0), resp.DataLen)
}

func TestListenerSurvivesMalformedFrame(t *testing.T) {
	st := newTestState(t)
	_, socketPath, cancel, done := startListener(t, st)
	defer func() {
		cancel()
		<-done
	}()

	// A truncated request drops the connection without killing the loop.
	conn, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	_, err = conn.Write([]byte{0x06, 0x01})
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	req := &ipmi.Request{NetFn: ipmi.NetFnApp, Cmd: ipmi.CmdGetDeviceID}
	resp := exchange(t, socketPath, req)
	assert.Equal(t, ipmi.CCOK, resp.CompletionCode)
}

func TestStopUnlinksSocket(t *testing.T) {
	st := newTestState(t)
	srv, socketPath, cancel, done := startListener(t, st)

	cancel()
	err := <-done
	assert.True(t, err == nil || errors.Is(err, context.Canceled))

	assert.Equal(t, StateStopped, srv.State())
	_, statErr := os.Stat(socketPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunRequiresState(t *testing.T) {
	srv := New(WithSocketPath(filepath.Join(t.TempDir(), "ipmi.sock")))

	err := srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
