package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// FileExists returns true if a file or directory with the given path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir returns true if a directory with the given path exists.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// UniquePath returns path if nothing exists there, otherwise the first
// free variant of the form base_N.ext (N starting at 1). Existing files
// are never overwritten.
func UniquePath(path string) string {
	if !FileExists(path) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if !FileExists(candidate) {
			return candidate
		}
	}
}

// MoveContents moves every regular file in srcDir into dstDir, renaming
// on collision via UniquePath. It returns the destination file names,
// relative to dstDir. Subdirectories of srcDir are left in place.
func MoveContents(srcDir, dstDir string) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read source directory", goerr.V("dir", srcDir))
	}

	var moved []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		src := filepath.Join(srcDir, e.Name())
		dst := UniquePath(filepath.Join(dstDir, e.Name()))

		if err := MoveFile(src, dst); err != nil {
			return moved, goerr.Wrap(err, "failed to move file",
				goerr.V("src", src),
				goerr.V("dst", dst),
			)
		}
		moved = append(moved, filepath.Base(dst))
	}

	return moved, nil
}

// MoveFile renames src to dst, falling back to copy-and-delete when the
// rename crosses filesystems.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
