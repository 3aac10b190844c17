package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/at-ishikawa/termwords/internal/cli"
)

func main() {
	rootCommand := newRootCommand()
	if err := rootCommand.Execute(); err != nil {
		// Lookup failures were already reported on stdout
		if !errors.Is(err, cli.ErrLookupFailed) {
			if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
				panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
			}
		}
		os.Exit(1)
	}
	os.Exit(0)
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}
