// Package filesystem provides filesystem implementations for compinst.
//
// This package contains implementations of the types.FS interface (the OS
// filesystem and an afero-backed one used by tests) together with the
// recursive copy and removal helpers the installer and stages share.
package filesystem
