// Package outfile opens destination files without silently clobbering
// existing ones.
package outfile

import (
	"errors"
	"io/fs"
	"os"

	"github.com/paulschiretz/pgl-bincut/pkg/failure"
	"github.com/paulschiretz/pgl-bincut/pkg/util"
)

// Open opens path for writing. Without overwrite the file is created
// exclusively and an existing file yields a failure.OutputExists error. With
// overwrite an existing file is truncated and reused.
func Open(path string, overwrite bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, util.UserWritableFilePerms)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrExist) {
		return nil, failure.New(failure.OutputExists, "output file %s already exists: pass --overwrite to overwrite", path)
	}
	return nil, failure.Wrap(failure.IoError, err, "could not open output file", path)
}
