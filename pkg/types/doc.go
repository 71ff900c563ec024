// Package types defines the core types and interfaces used throughout compinst.
// This includes the Package and RootPackage data structures, the Metadata bag
// they carry, the Stage contract implemented by pipeline stages, and the FS and
// IO interfaces that the host hands to every component.
package types
