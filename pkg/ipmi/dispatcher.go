// SPDX-License-Identifier: BSD-3-Clause

package ipmi

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/mini-bmc/mini-bmc/pkg/bmc"
	"github.com/mini-bmc/mini-bmc/pkg/sel"
)

// Device identity returned by Get Device ID: device id 0x20, revision 1,
// firmware 2.5, IPMI 2.0.
var deviceID = [5]byte{0x20, 0x01, 0x02, 0x05, 0x02}

// selMessageLimit caps the message bytes returned by Get SEL Entry.
const selMessageLimit = 200

// Dispatcher routes framed requests to their handlers by (NetFn, Cmd).
// Handlers acquire the state lock themselves; the listener calls
// Dispatch without holding it.
type Dispatcher struct {
	state *bmc.State
}

// NewDispatcher creates a dispatcher bound to the shared state.
func NewDispatcher(state *bmc.State) *Dispatcher {
	return &Dispatcher{state: state}
}

// Dispatch handles one request and always produces a response; protocol
// errors surface as completion codes, never as Go errors.
func (d *Dispatcher) Dispatch(req *Request) *Response {
	resp := &Response{}

	switch req.NetFn {
	case NetFnApp:
		if req.Cmd == CmdGetDeviceID {
			d.handleGetDeviceID(resp)
		} else {
			resp.CompletionCode = CCInvalidCommand
		}
	case NetFnSensor:
		switch req.Cmd {
		case CmdGetSensorReading:
			d.handleGetSensorReading(req, resp)
		case CmdSetFanDuty:
			d.handleSetFanDuty(req, resp)
		default:
			resp.CompletionCode = CCInvalidCommand
		}
	case NetFnStorage:
		if req.Cmd == CmdGetSELEntry {
			d.handleGetSELEntry(req, resp)
		} else {
			resp.CompletionCode = CCInvalidCommand
		}
	default:
		resp.CompletionCode = CCInvalidCommand
	}

	return resp
}

func (d *Dispatcher) handleGetDeviceID(resp *Response) {
	resp.CompletionCode = CCOK
	copy(resp.Data[:], deviceID[:])
	resp.DataLen = uint8(len(deviceID))
}

// handleGetSensorReading returns the sensor value as signed 8.8
// fixed-point big-endian, followed by the status and type enums.
func (d *Dispatcher) handleGetSensorReading(req *Request, resp *Response) {
	if req.DataLen < 1 {
		resp.CompletionCode = CCInvalidParameter
		return
	}
	idx := int(req.Data[0])

	d.state.Lock()
	defer d.state.Unlock()

	if idx >= len(d.state.Sensors) {
		resp.CompletionCode = CCInvalidParameter
		return
	}
	s := &d.state.Sensors[idx]

	raw := int16(math.Round(s.Value * 256.0))
	binary.BigEndian.PutUint16(resp.Data[0:2], uint16(raw))
	resp.Data[2] = uint8(s.Status)
	resp.Data[3] = uint8(s.Type)
	resp.DataLen = 4
	resp.CompletionCode = CCOK
}

// handleSetFanDuty writes the commanded duty directly. The next thermal
// tick's PID output overwrites it; the SEL entry is the durable record
// of the manual request. A persistent manual mode is intentionally not
// provided.
func (d *Dispatcher) handleSetFanDuty(req *Request, resp *Response) {
	if req.DataLen < 1 {
		resp.CompletionCode = CCInvalidParameter
		return
	}
	duty := float64(req.Data[0])
	if duty < 0 || duty > 100 {
		resp.CompletionCode = CCInvalidParameter
		return
	}

	d.state.Lock()
	d.state.FanDutyPercent = duty
	d.state.SEL.Add(sel.SeverityInfo, "IPMI",
		fmt.Sprintf("Fan duty manually set to %.0f%%", duty))
	d.state.Unlock()

	resp.CompletionCode = CCOK
	resp.DataLen = 0
}

// handleGetSELEntry looks up an entry by 16-bit big-endian id and packs
// id, severity and a truncated message.
func (d *Dispatcher) handleGetSELEntry(req *Request, resp *Response) {
	if req.DataLen < 2 {
		resp.CompletionCode = CCInvalidParameter
		return
	}
	id := uint32(binary.BigEndian.Uint16(req.Data[0:2]))

	d.state.Lock()
	defer d.state.Unlock()

	entry, ok := d.state.SEL.Get(id)
	if !ok {
		resp.CompletionCode = CCInvalidParameter
		return
	}

	binary.BigEndian.PutUint16(resp.Data[0:2], uint16(entry.ID))
	resp.Data[2] = uint8(entry.Severity)

	msg := entry.Message
	if len(msg) > selMessageLimit {
		msg = msg[:selMessageLimit]
	}
	copy(resp.Data[3:], msg)
	resp.DataLen = uint8(3 + len(msg))
	resp.CompletionCode = CCOK
}
