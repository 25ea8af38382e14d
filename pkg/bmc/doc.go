// SPDX-License-Identifier: BSD-3-Clause

// Package bmc holds the shared daemon state: sensors, thermal control,
// event log, secure-boot results and the run flag, all behind one coarse
// mutex. The access pattern is brief critical sections at low contention,
// so a single lock keeps the ordering guarantees easy to reason about.
//
// The package also owns the export contract: EncodeSnapshot and
// EncodeSEL produce the JSON documents that downstream management
// software reads from disk. The document is captured under the lock;
// marshaling and writing happen outside it, via atomic temp-and-rename, so readers
// never see a torn document.
package bmc
