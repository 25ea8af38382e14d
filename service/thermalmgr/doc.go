// SPDX-License-Identifier: BSD-3-Clause

// Package thermalmgr drives the firmware's periodic control tick. Each
// tick polls the simulated sensors with the current fan duty, computes
// the next duty from the CPU temperature via the PID controller, and
// exports the state snapshot (atomic) and SEL (best-effort) to disk for
// downstream management software. Tick order is fixed: poll, PID,
// release the state lock, then persist.
//
// When the IPC bus is available the service also broadcasts per-tick
// sensor readings and every appended SEL entry.
package thermalmgr
