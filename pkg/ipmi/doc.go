// SPDX-License-Identifier: BSD-3-Clause

// Package ipmi implements a simplified IPMI-style command protocol:
// fixed-size request/response frames over a local stream socket,
// dispatched by (NetFn, Cmd). Supported commands are Get Device ID,
// Get Sensor Reading, Set Fan Duty (OEM) and Get SEL Entry; everything
// else completes with 0xC1. Multi-byte payload fields are big-endian,
// matching IPMI convention, regardless of host byte order.
//
// The real transports (KCS, BT, RMCP+) and session authentication are
// out of scope; the unix socket stands in for the host interface.
package ipmi
