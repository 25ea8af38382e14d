// SPDX-License-Identifier: BSD-3-Clause

// Package sel implements the System Event Log: a fixed 256-entry ring of
// timestamped, severity-tagged records with monotonically increasing ids.
// Eviction is FIFO and silent; ids are never reset for the process
// lifetime, so readers can detect gaps after overflow.
//
// A Critical append fires the registered persistence hook immediately,
// matching IPMI SEL practice of flushing on significant events.
package sel
