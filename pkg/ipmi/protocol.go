// SPDX-License-Identifier: BSD-3-Clause

package ipmi

import (
	"fmt"
	"io"
)

// Network function codes. Only the subset the simulator dispatches on.
const (
	NetFnApp     uint8 = 0x06
	NetFnSensor  uint8 = 0x04
	NetFnStorage uint8 = 0x0A
)

// Command codes within their network functions.
const (
	CmdGetDeviceID      uint8 = 0x01 // NetFnApp
	CmdGetSensorReading uint8 = 0x2D // NetFnSensor
	CmdSetFanDuty       uint8 = 0x30 // NetFnSensor, OEM extension
	CmdGetSELEntry      uint8 = 0x43 // NetFnStorage
)

// Completion codes.
const (
	CCOK               uint8 = 0x00
	CCInvalidCommand   uint8 = 0xC1
	CCInvalidParameter uint8 = 0xC9
	CCUnspecified      uint8 = 0xFF
)

// MaxDataLen is the fixed payload capacity of both frame directions.
const MaxDataLen = 256

// Fixed wire sizes. Frames are always transmitted at full size; DataLen
// marks the valid prefix of the payload. All multi-byte fields inside
// the payload are big-endian per IPMI convention.
const (
	RequestSize  = 2 + MaxDataLen + 1
	ResponseSize = 1 + MaxDataLen + 1
)

// Request is one framed IPMI command.
type Request struct {
	NetFn   uint8
	Cmd     uint8
	Data    [MaxDataLen]byte
	DataLen uint8
}

// Response is one framed IPMI completion.
type Response struct {
	CompletionCode uint8
	Data           [MaxDataLen]byte
	DataLen        uint8
}

// MarshalBinary encodes the request into its fixed 259-byte frame.
func (r *Request) MarshalBinary() ([]byte, error) {
	buf := make([]byte, RequestSize)
	buf[0] = r.NetFn
	buf[1] = r.Cmd
	copy(buf[2:2+MaxDataLen], r.Data[:])
	buf[RequestSize-1] = r.DataLen
	return buf, nil
}

// UnmarshalBinary decodes a fixed 259-byte frame.
func (r *Request) UnmarshalBinary(buf []byte) error {
	if len(buf) != RequestSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrShortFrame, len(buf), RequestSize)
	}
	r.NetFn = buf[0]
	r.Cmd = buf[1]
	copy(r.Data[:], buf[2:2+MaxDataLen])
	r.DataLen = buf[RequestSize-1]
	return nil
}

// MarshalBinary encodes the response into its fixed 258-byte frame.
func (r *Response) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ResponseSize)
	buf[0] = r.CompletionCode
	copy(buf[1:1+MaxDataLen], r.Data[:])
	buf[ResponseSize-1] = r.DataLen
	return buf, nil
}

// UnmarshalBinary decodes a fixed 258-byte frame.
func (r *Response) UnmarshalBinary(buf []byte) error {
	if len(buf) != ResponseSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrShortFrame, len(buf), ResponseSize)
	}
	r.CompletionCode = buf[0]
	copy(r.Data[:], buf[1:1+MaxDataLen])
	r.DataLen = buf[ResponseSize-1]
	return nil
}

// ReadRequest reads exactly one request frame from r.
func ReadRequest(r io.Reader) (*Request, error) {
	buf := make([]byte, RequestSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShortFrame, err)
	}
	req := &Request{}
	if err := req.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return req, nil
}

// WriteResponse writes exactly one response frame to w.
func WriteResponse(w io.Writer, resp *Response) error {
	buf, err := resp.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%w: %w", ErrFrameWrite, err)
	}
	return nil
}
