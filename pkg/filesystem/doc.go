// Package filesystem provides filesystem implementations for bibsort.
//
// This package contains implementations of the types.FS interface,
// the OS filesystem used by the CLI and an afero-backed one used by tests,
// plus helpers that read inputs and write outputs with coded errors.
package filesystem
