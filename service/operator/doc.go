// SPDX-License-Identifier: BSD-3-Clause

// Package operator orchestrates the BMC simulator lifecycle. Startup
// runs in phases mirroring real firmware bring-up: shared state and
// event log, sensor and PID initialization, secure-boot verification,
// then the supervised long-running services (IPC bus, thermal control
// loop, IPMI listener) under an oversight tree. A broken secure-boot
// chain degrades but does not abort: the controller must remain
// observable.
//
// Shutdown is cooperative via context cancellation: the run flag
// clears, the final SEL entry persists, firmware blobs are removed and
// the listener unlinks its socket.
package operator
