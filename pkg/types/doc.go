// Package types defines the core types and interfaces used throughout bibsort.
// This includes the Entry and Database produced by the parser, the
// FieldOrder table that drives rendering, and the FS interface used for
// reading bibliographies and writing results.
package types
