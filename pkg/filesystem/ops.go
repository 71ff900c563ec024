package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/types"
)

const (
	dirPerm  fs.FileMode = 0755
	filePerm fs.FileMode = 0644
)

// Exists reports whether path exists. Errors other than "not exist" are
// returned to the caller.
func Exists(fsys types.FS, path string) (bool, error) {
	if _, err := fsys.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnsureDir creates path and its parents.
func EnsureDir(fsys types.FS, path string) error {
	if err := fsys.MkdirAll(path, dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
	}
	return nil
}

// RemovePath removes path recursively. A missing path is not an error.
func RemovePath(fsys types.FS, path string) error {
	exists, err := Exists(fsys, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}
	if !exists {
		return nil
	}
	if err := fsys.RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", path)
	}
	return nil
}

// CopyFile copies a single file, creating the destination's parents.
func CopyFile(fsys types.FS, src, dst string) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}
	if err := EnsureDir(fsys, filepath.Dir(dst)); err != nil {
		return err
	}
	if err := fsys.WriteFile(dst, data, filePerm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst)
	}
	return nil
}

// CopyTree copies src to dst. src may be a file or a directory; directories
// are copied recursively.
func CopyTree(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}
	if !info.IsDir() {
		return CopyFile(fsys, src, dst)
	}

	if err := EnsureDir(fsys, dst); err != nil {
		return err
	}
	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", src)
	}
	for _, entry := range entries {
		if err := CopyTree(fsys, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ListFiles returns the paths of all regular files under root, relative to
// root, in lexical order. A missing root yields no files.
func ListFiles(fsys types.FS, root string) ([]string, error) {
	exists, err := Exists(fsys, root)
	if err != nil || !exists {
		return nil, err
	}

	var files []string
	var walk func(rel string) error
	walk = func(rel string) error {
		entries, err := fsys.ReadDir(filepath.Join(root, rel))
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", filepath.Join(root, rel))
		}
		for _, entry := range entries {
			child := filepath.Join(rel, entry.Name())
			if entry.IsDir() {
				if err := walk(child); err != nil {
					return err
				}
				continue
			}
			files = append(files, child)
		}
		return nil
	}

	if err := walk(""); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
