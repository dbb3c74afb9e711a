package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/paulschiretz/pgl-bincut/pkg/buildinfo"
	"github.com/paulschiretz/pgl-bincut/pkg/filechunk"
	"github.com/paulschiretz/pgl-bincut/pkg/flagparse"
	"github.com/paulschiretz/pgl-bincut/pkg/metrics"
	"github.com/paulschiretz/pgl-bincut/pkg/plog"
)

// RunChunks handles the logic for the chunks command.
func RunChunks(ctx context.Context, flagMap map[string]interface{}) error {
	source, ok := flagMap["path"].(string)
	if !ok || source == "" {
		return fmt.Errorf("the <path> argument is required to run chunks")
	}
	chunkSize, ok := flagMap["chunk-size"].(int64)
	if !ok {
		return fmt.Errorf("the <chunk_size> argument is required to run chunks")
	}

	runConfig, err := loadRunConfig(flagMap)
	if err != nil {
		return err
	}

	m := metrics.New(runConfig.Metrics)
	chunker := filechunk.NewChunker(runConfig.BufferSize(), runConfig.Compression.Format, runConfig.Compression.Level, m)

	plog.Info("Starting "+buildinfo.Name, "command", flagparse.Chunks, "source", source, "chunkSize", chunkSize)
	startTime := time.Now()
	written, err := chunker.Split(ctx, filechunk.SplitRequest{
		Source:         source,
		ChunkSize:      chunkSize,
		Overwrite:      overwriteFlag(flagMap),
		DryRun:         runConfig.Runtime.DryRun,
		CheckFreeSpace: runConfig.Preflight.CheckFreeSpace,
	})
	if err != nil {
		return err // logged by main
	}
	m.Log(flagparse.Chunks.String())

	plog.Info(buildinfo.Name+" finished successfully.", "chunks", len(written), "duration", time.Since(startTime).Round(time.Millisecond))
	return nil
}
