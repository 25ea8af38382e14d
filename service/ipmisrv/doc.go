// SPDX-License-Identifier: BSD-3-Clause

// Package ipmisrv serves the simplified IPMI protocol on a local unix
// stream socket. One accepting goroutine serializes all traffic, which
// is acceptable at BMC command rates; each accepted connection carries a
// single fixed-size request and response. The listener's lifecycle
// (unbound, listening, stopped) is modeled as a state machine, and stop
// both closes the socket and unlinks its filesystem path.
//
// Listener start failure is treated as non-fatal by the operator: the
// daemon continues to poll and control without an external command
// surface.
package ipmisrv
