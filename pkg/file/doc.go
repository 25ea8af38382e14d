// SPDX-License-Identifier: BSD-3-Clause

// Package file provides atomic file creation and replacement via the
// write-temp-then-rename pattern. The update form backs the state
// snapshot export: downstream readers polling the JSON files must never
// observe a partially written document.
package file
