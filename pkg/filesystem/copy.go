package filesystem

import (
	"io/fs"
	"path/filepath"

	"github.com/bootsplash/splashgen/pkg/errors"
	"github.com/bootsplash/splashgen/pkg/types"
)

// CopyFile copies a single file, preserving the source's permission
// bits. Parent directories of dst must already exist.
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot stat %s", src)
	}
	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot read %s", src)
	}
	if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot write %s", dst)
	}
	return nil
}

// CopyTree recursively copies a directory tree from src to dst,
// creating dst and any intermediate directories
func CopyTree(fsys types.FS, src, dst string) error {
	if err := fsys.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dst)
	}
	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot read directory %s", src)
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := CopyTree(fsys, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := CopyFile(fsys, srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

// WalkFiles calls fn for every regular file under root, depth-first
func WalkFiles(fsys types.FS, root string, fn func(path string, info fs.DirEntry) error) error {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			if err := WalkFiles(fsys, path, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(path, entry); err != nil {
			return err
		}
	}
	return nil
}
