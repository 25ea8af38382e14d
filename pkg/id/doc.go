// SPDX-License-Identifier: BSD-3-Clause

// Package id provides UUID identity for the daemon: ephemeral ids for
// one-shot use and a persistent instance id stored on disk so the
// simulator is distinguishable across restarts in logs and telemetry.
package id
