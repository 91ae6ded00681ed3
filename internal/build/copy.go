package build

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bldrhq/bldr/internal/paths"
)

// Copies a directory tree, preserving file permission bits.
//
// Symlinks inside the source tree are not followed; the build descriptor
// format does not use them and following links out of the tree would
// break workspace isolation.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, relPath)

		if d.IsDir() {
			return os.MkdirAll(target, paths.DefaultDirMode)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		return copyFileMode(path, target, info.Mode().Perm())
	})
}

// Copies a single regular file with the default file mode.
func copyFile(src, dst string) error {
	return copyFileMode(src, dst, paths.DefaultFileMode)
}

// Copies a single regular file with an explicit mode.
func copyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), paths.DefaultDirMode); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()

	if copyErr != nil {
		return copyErr
	}
	return closeErr
}
