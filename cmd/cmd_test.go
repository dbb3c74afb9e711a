package cmd_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulschiretz/pgl-bincut/cmd"
	"github.com/paulschiretz/pgl-bincut/pkg/compression"
	"github.com/paulschiretz/pgl-bincut/pkg/filechunk"
	"github.com/paulschiretz/pgl-bincut/pkg/failure"
	"github.com/paulschiretz/pgl-bincut/pkg/flagparse"
	"github.com/paulschiretz/pgl-bincut/pkg/plog"
)

func TestMain(m *testing.M) {
	plog.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// parse runs args through the command-line parser and fails the test on error.
func parse(t *testing.T, args ...string) map[string]interface{} {
	t.Helper()
	_, flagMap, err := flagparse.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v) failed: %v", args, err)
	}
	return flagMap
}

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestRunChunksAndJoin(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	content := []byte("0123456789")
	writeFile(t, src, content)

	if err := cmd.RunChunks(context.Background(), parse(t, "chunks", src, "4")); err != nil {
		t.Fatalf("RunChunks failed: %v", err)
	}
	for i, want := range []string{"0123", "4567", "89"} {
		got, err := os.ReadFile(filechunk.ChunkName(src, i, compression.None))
		if err != nil {
			t.Fatalf("chunk %d missing: %v", i, err)
		}
		if string(got) != want {
			t.Errorf("chunk %d: expected %q, got %q", i, want, got)
		}
	}

	t.Run("Second run refuses to overwrite", func(t *testing.T) {
		err := cmd.RunChunks(context.Background(), parse(t, "chunks", src, "4"))
		if !errors.Is(err, failure.OutputExists) {
			t.Fatalf("expected OutputExists, got %v", err)
		}
	})

	t.Run("Overwrite with shorthand after positionals", func(t *testing.T) {
		if err := cmd.RunChunks(context.Background(), parse(t, "chunks", src, "0x4", "-f")); err != nil {
			t.Fatalf("RunChunks with -f failed: %v", err)
		}
	})

	t.Run("Join reproduces the source", func(t *testing.T) {
		joined := filepath.Join(dir, "joined.bin")
		if err := cmd.RunJoin(context.Background(), parse(t, "join", src, joined)); err != nil {
			t.Fatalf("RunJoin failed: %v", err)
		}
		got, _ := os.ReadFile(joined)
		if !bytes.Equal(got, content) {
			t.Errorf("expected %q, got %q", content, got)
		}
	})
}

func TestRunChunks_ZeroSize(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	writeFile(t, src, []byte("abc"))

	err := cmd.RunChunks(context.Background(), parse(t, "chunks", src, "0"))
	if !errors.Is(err, failure.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestRunChunks_CompressedJoin(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	content := bytes.Repeat([]byte("compressible "), 500)
	writeFile(t, src, content)

	if err := cmd.RunChunks(context.Background(), parse(t, "chunks", src, "1000", "--compression-format", "zstd", "--metrics")); err != nil {
		t.Fatalf("RunChunks failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data.bin-00.zst")); err != nil {
		t.Fatalf("expected a zstd chunk: %v", err)
	}

	joined := filepath.Join(dir, "joined.bin")
	if err := cmd.RunJoin(context.Background(), parse(t, "join", src, joined)); err != nil {
		t.Fatalf("RunJoin failed: %v", err)
	}
	got, _ := os.ReadFile(joined)
	if !bytes.Equal(got, content) {
		t.Errorf("joined content does not match the source")
	}
}

func TestRunExtract(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "Length", args: []string{"2", "+3"}, want: "234"},
		{name: "To EOF", args: []string{"5"}, want: "56789"},
		{name: "Hex end", args: []string{"0x1", "0x4"}, want: "123"},
		{name: "Hex length", args: []string{"0", "+0x2"}, want: "01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "data.bin")
			dst := filepath.Join(dir, "out.bin")
			writeFile(t, src, []byte("0123456789"))

			args := append([]string{"extract", src, dst}, tc.args...)
			if err := cmd.RunExtract(context.Background(), parse(t, args...)); err != nil {
				t.Fatalf("RunExtract failed: %v", err)
			}
			got, _ := os.ReadFile(dst)
			if string(got) != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRunExtract_Errors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	dst := filepath.Join(dir, "out.bin")
	writeFile(t, src, []byte("0123456789"))

	testCases := []struct {
		name string
		args []string
		want failure.Kind
	}{
		{name: "Start past EOF", args: []string{"extract", src, dst, "11"}, want: failure.RangeError},
		{name: "End before start", args: []string{"extract", src, dst, "5", "4"}, want: failure.RangeError},
		{name: "Bad config file", args: []string{"extract", src, dst, "0", "--config", filepath.Join(dir, "missing.json")}, want: failure.IoError},
		{name: "Bad compression format", args: []string{"extract", src, dst, "0", "--compression-format", "zip"}, want: failure.InvalidArgument},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := cmd.RunExtract(context.Background(), parse(t, tc.args...))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
				t.Errorf("expected no output file, stat returned %v", statErr)
			}
		})
	}
}

func TestRunExtract_DryRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	dst := filepath.Join(dir, "out.bin")
	writeFile(t, src, []byte("0123456789"))

	if err := cmd.RunExtract(context.Background(), parse(t, "extract", "--dry-run", src, dst, "2")); err != nil {
		t.Fatalf("RunExtract failed: %v", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("expected dry run to write nothing, stat returned %v", err)
	}
}

func TestRunExtract_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	dst := filepath.Join(dir, "out.bin.gz")
	conf := filepath.Join(dir, "bincut.json")
	writeFile(t, src, bytes.Repeat([]byte("z"), 4096))
	writeFile(t, conf, []byte(`{"compression": {"format": "gzip", "level": "best"}, "performance": {"bufferSizeKB": 1}}`))

	if err := cmd.RunExtract(context.Background(), parse(t, "extract", src, dst, "0", "--config", conf)); err != nil {
		t.Fatalf("RunExtract failed: %v", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("expected output: %v", err)
	}
	if info.Size() >= 4096 {
		t.Errorf("expected gzip output smaller than the input, got %d bytes", info.Size())
	}
}

func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := cmd.RunVersion(&buf); err != nil {
		t.Fatalf("RunVersion failed: %v", err)
	}
	if !strings.Contains(buf.String(), " version ") {
		t.Errorf("unexpected version output: %q", buf.String())
	}
}
