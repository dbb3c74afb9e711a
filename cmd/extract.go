package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/paulschiretz/pgl-bincut/pkg/buildinfo"
	"github.com/paulschiretz/pgl-bincut/pkg/fileextract"
	"github.com/paulschiretz/pgl-bincut/pkg/flagparse"
	"github.com/paulschiretz/pgl-bincut/pkg/metrics"
	"github.com/paulschiretz/pgl-bincut/pkg/plog"
)

// RunExtract handles the logic for the extract command.
func RunExtract(ctx context.Context, flagMap map[string]interface{}) error {
	source, ok := flagMap["path"].(string)
	if !ok || source == "" {
		return fmt.Errorf("the <path> argument is required to run extract")
	}
	destination, ok := flagMap["output-path"].(string)
	if !ok || destination == "" {
		return fmt.Errorf("the <output_path> argument is required to run extract")
	}
	start, ok := flagMap["start"].(int64)
	if !ok {
		return fmt.Errorf("the <start> argument is required to run extract")
	}
	// Absent means up to the end of the file, which is the zero value.
	terminus, _ := flagMap["end-or-len"].(fileextract.EndOrLen)

	runConfig, err := loadRunConfig(flagMap)
	if err != nil {
		return err
	}

	m := metrics.New(runConfig.Metrics)
	extractor := fileextract.NewExtractor(runConfig.BufferSize(), runConfig.Compression.Format, runConfig.Compression.Level, m)

	plog.Info("Starting "+buildinfo.Name, "command", flagparse.Extract, "source", source, "destination", destination, "start", start, "terminus", terminus)
	startTime := time.Now()
	n, err := extractor.Extract(ctx, fileextract.Request{
		Source:         source,
		Destination:    destination,
		Start:          start,
		Terminus:       terminus,
		Overwrite:      overwriteFlag(flagMap),
		DryRun:         runConfig.Runtime.DryRun,
		CheckFreeSpace: runConfig.Preflight.CheckFreeSpace,
	})
	if err != nil {
		return err
	}
	m.Log(flagparse.Extract.String())

	plog.Info(buildinfo.Name+" finished successfully.", "bytes", n, "duration", time.Since(startTime).Round(time.Millisecond))
	return nil
}
