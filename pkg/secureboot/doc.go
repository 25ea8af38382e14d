// SPDX-License-Identifier: BSD-3-Clause

// Package secureboot models a boot-time chain of trust over four
// firmware stages (bootloader, bmc_firmware, application, config_data).
// Each stage is a deterministic 4 KiB blob whose SHA-256 digest is
// recorded at init as the trusted baseline; Verify re-hashes the stages
// in order and stops at the first failure, leaving later stages
// uninspected. Integrity uses digest comparison only; signature
// verification is out of scope for the simulator.
//
// Tamper and Restore exist so operators can demonstrate chain-break
// detection and recovery at runtime.
package secureboot
