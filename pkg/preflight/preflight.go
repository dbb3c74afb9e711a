// Package preflight provides checks that run before any output file is
// opened. They only inspect the filesystem and never change it, so a failed
// check leaves no partial output behind.
package preflight

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulschiretz/pgl-bincut/pkg/failure"
	"github.com/paulschiretz/pgl-bincut/pkg/plog"
)

// errFreeSpaceUnsupported is returned by freeBytes on platforms without a
// free-space query.
var errFreeSpaceUnsupported = errors.New("free space query not supported on this platform")

// CheckSourceFile verifies that path names an existing regular file and
// returns its info. Directories, pipes and devices are rejected because their
// length cannot be determined up front.
func CheckSourceFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, failure.Wrap(failure.IoError, err, "cannot access source file", path)
	}
	if !info.Mode().IsRegular() {
		return nil, failure.New(failure.InvalidPath, "source path %s is not a regular file", path)
	}
	return info, nil
}

// CheckOutputDir verifies that dir exists and is a directory so output files
// can be created in it.
func CheckOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return failure.Wrap(failure.IoError, err, "cannot access output directory", dir)
	}
	if !info.IsDir() {
		return failure.New(failure.InvalidPath, "output directory %s is not a directory", dir)
	}
	return nil
}

// CheckFreeSpace verifies that the volume holding dir has at least required
// bytes available to the current user. On platforms without a free-space
// query the check is skipped with a warning.
func CheckFreeSpace(dir string, required int64) error {
	if required <= 0 {
		return nil
	}
	free, err := freeBytes(dir)
	if errors.Is(err, errFreeSpaceUnsupported) {
		plog.Warn("Skipping free space check", "reason", err)
		return nil
	}
	if err != nil {
		return failure.Wrap(failure.IoError, err, "cannot determine free space of", dir)
	}
	plog.Debug("Free space check", "dir", dir, "required", required, "free", free)
	if free < uint64(required) {
		return &failure.Error{
			Kind: failure.IoError,
			Msg:  "not enough free space in",
			Path: dir,
			Err:  fmt.Errorf("need %d bytes, %d available", required, free),
		}
	}
	return nil
}
