// SPDX-License-Identifier: BSD-3-Clause

// Package process bridges service.Service implementations into the
// oversight supervision tree, with panic recovery at the child
// boundary.
package process
