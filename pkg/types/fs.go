package types

import (
	"io/fs"
)

// FS is the filesystem interface required for compinst operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Removal
	Remove(name string) error
	RemoveAll(path string) error
}
