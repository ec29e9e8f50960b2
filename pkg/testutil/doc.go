// Package testutil provides utilities for testing bibsort components.
//
// Key components:
//   - TestEnvironment: a scratch filesystem plus isolated XDG locations
//   - Sample bibliographies shared by command and renderer tests
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; only code that goes through the OS (commands,
//     config file discovery, logging) needs EnvIsolated
//   - Test data is defined inline
package testutil
