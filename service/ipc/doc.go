// SPDX-License-Identifier: BSD-3-Clause

// Package ipc embeds a NATS server as the daemon's internal message
// bus. The server runs with DontListen set, so the only way in is the
// in-process connection provider; nothing is exposed on the network.
// Services use the bus for broadcast-style telemetry (sensor readings,
// SEL events) and tolerate its absence.
package ipc
