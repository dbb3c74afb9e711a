package cmd

import (
	"fmt"
	"io"

	"github.com/paulschiretz/pgl-bincut/pkg/buildinfo"
)

// RunVersion prints the application name and version to w.
func RunVersion(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s version %s\n", buildinfo.Name, buildinfo.Version)
	return err
}
