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

// RunJoin handles the logic for the join command.
func RunJoin(ctx context.Context, flagMap map[string]interface{}) error {
	base, ok := flagMap["path"].(string)
	if !ok || base == "" {
		return fmt.Errorf("the <path> argument is required to run join")
	}
	destination, ok := flagMap["output-path"].(string)
	if !ok || destination == "" {
		return fmt.Errorf("the <output_path> argument is required to run join")
	}

	runConfig, err := loadRunConfig(flagMap)
	if err != nil {
		return err
	}

	m := metrics.New(runConfig.Metrics)
	// Join writes plain output; each chunk's format comes from its name.
	chunker := filechunk.NewChunker(runConfig.BufferSize(), runConfig.Compression.Format, runConfig.Compression.Level, m)

	plog.Info("Starting "+buildinfo.Name, "command", flagparse.Join, "base", base, "destination", destination)
	startTime := time.Now()
	n, err := chunker.Join(ctx, filechunk.JoinRequest{
		Base:           base,
		Destination:    destination,
		Overwrite:      overwriteFlag(flagMap),
		DryRun:         runConfig.Runtime.DryRun,
		CheckFreeSpace: runConfig.Preflight.CheckFreeSpace,
	})
	if err != nil {
		return err
	}
	m.Log(flagparse.Join.String())

	plog.Info(buildinfo.Name+" finished successfully.", "bytes", n, "duration", time.Since(startTime).Round(time.Millisecond))
	return nil
}
