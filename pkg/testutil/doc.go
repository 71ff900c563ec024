// Package testutil provides utilities for testing compinst components.
//
// Key components:
//   - NewTestFS: afero-backed in-memory filesystem implementing types.FS
//   - BufferIO: a types.IO sink that records every line for assertions
//   - NewConfig: a host configuration built from an inline map
//   - WriteFileT / ReadFileT / AssertFileContent: terse filesystem fixtures
//
// All test data should be defined inline, and each test should build its own
// filesystem and configuration so tests stay isolated.
package testutil
