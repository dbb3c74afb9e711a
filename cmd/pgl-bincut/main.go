package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/paulschiretz/pgl-bincut/cmd"
	"github.com/paulschiretz/pgl-bincut/pkg/buildinfo"
	"github.com/paulschiretz/pgl-bincut/pkg/flagparse"
	"github.com/paulschiretz/pgl-bincut/pkg/plog"
)

// run encapsulates the main application logic and returns an error if something
// goes wrong, allowing the main function to handle exit codes.
func run(ctx context.Context, args []string) error {
	command, flagMap, err := flagparse.Parse(args)
	if err != nil {
		return err
	}

	switch command {
	case flagparse.None:
		return nil // help was printed
	case flagparse.Version:
		return cmd.RunVersion(os.Stdout)
	case flagparse.Chunks:
		return cmd.RunChunks(ctx, flagMap)
	case flagparse.Extract:
		return cmd.RunExtract(ctx, flagMap)
	case flagparse.Join:
		return cmd.RunJoin(ctx, flagMap)
	default:
		return fmt.Errorf("internal error: unknown command %d", command)
	}
}

func main() {
	// Set up a context that is canceled when an interrupt signal is received.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		plog.Error(buildinfo.Name+" exited with error", "error", err)
		os.Exit(1)
	}
}
