// SPDX-License-Identifier: BSD-3-Clause

package ipmi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestFrameRoundTrip(t *testing.T) {
	req := &Request{NetFn: NetFnSensor, Cmd: CmdGetSensorReading, DataLen: 1}
	req.Data[0] = 3

	buf, err := req.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, RequestSize)

	got, err := ReadRequest(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestResponseFrameRoundTrip(t *testing.T) {
	resp := &Response{CompletionCode: CCOK, DataLen: 2}
	resp.Data[0] = 0x37
	resp.Data[1] = 0x00

	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, resp))
	require.Equal(t, ResponseSize, buf.Len())

	got := &Response{}
	require.NoError(t, got.UnmarshalBinary(buf.Bytes()))
	assert.Equal(t, resp, got)
}

func TestReadRequestShortFrame(t *testing.T) {
	_, err := ReadRequest(bytes.NewReader([]byte{0x06, 0x01}))
	assert.ErrorIs(t, err, ErrShortFrame)
}
