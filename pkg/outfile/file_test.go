package outfile

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulschiretz/pgl-bincut/pkg/compression"
	"github.com/paulschiretz/pgl-bincut/pkg/failure"
)

func TestCreate(t *testing.T) {
	payload := bytes.Repeat([]byte("abcdefgh"), 1024)

	for _, format := range []compression.Format{compression.None, compression.Gzip, compression.Zstd} {
		t.Run(format.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+format.Extension())
			var onDisk int64
			out, err := Create(path, Options{Format: format, Level: compression.Fastest, Written: func(n int64) { onDisk += n }})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if out.Path() != path {
				t.Errorf("expected path %s, got %s", path, out.Path())
			}
			if _, err := out.Write(payload); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if err := out.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat failed: %v", err)
			}
			if info.Size() != onDisk {
				t.Errorf("expected Written to report %d bytes, got %d", info.Size(), onDisk)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("open failed: %v", err)
			}
			defer f.Close()
			r, err := compression.NewReader(f, format)
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read back failed: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("content mismatch after %s round trip", format)
			}
		})
	}

	t.Run("Guard applies", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out")
		if err := os.WriteFile(path, []byte("keep"), 0644); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		if _, err := Create(path, Options{}); !errors.Is(err, failure.OutputExists) {
			t.Errorf("expected OutputExists, got %v", err)
		}
	})
}

func TestCheckAvailable(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing")
	if err := os.WriteFile(existing, nil, 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := CheckAvailable(filepath.Join(dir, "new"), false); err != nil {
		t.Errorf("expected a new path to be available, got %v", err)
	}
	if err := CheckAvailable(existing, false); !errors.Is(err, failure.OutputExists) {
		t.Errorf("expected OutputExists, got %v", err)
	}
	if err := CheckAvailable(existing, true); err != nil {
		t.Errorf("expected overwrite to allow an existing path, got %v", err)
	}
}
