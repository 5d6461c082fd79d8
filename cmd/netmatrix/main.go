// Command netmatrix runs a file of network commands and writes one result
// per command to an output file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dd0wney/netmatrix/pkg/audit"
	"github.com/dd0wney/netmatrix/pkg/command"
	"github.com/dd0wney/netmatrix/pkg/config"
	"github.com/dd0wney/netmatrix/pkg/engine"
	"github.com/dd0wney/netmatrix/pkg/logging"
	"github.com/dd0wney/netmatrix/pkg/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("netmatrix", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: netmatrix [-config file] <input_file> <output_file>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}
	inputPath, outputPath := fs.Arg(0), fs.Arg(1)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	logger := logging.NewFromEnv(cfg.Level())

	var registry *metrics.Registry
	if cfg.Metrics.Enabled {
		registry = metrics.NewRegistry()
	}
	engineConfig := engine.EngineConfig{Logger: logger, Metrics: registry}
	var journal *audit.Journal
	if cfg.Audit.Enabled {
		journal = audit.NewJournal(cfg.Audit.BufferSize)
		engineConfig.Journal = journal
	}

	eng := engine.NewEngineWithConfig(engineConfig)
	runner := command.NewRunner(command.NewDispatcher(eng), logger)

	in, err := openInput(inputPath, cfg.Input.Mmap)
	if err != nil {
		logger.Error("failed to open input", logging.String("path", inputPath), logging.Error(err))
		fmt.Fprintf(stderr, "Error reading/writing files: %v\n", err)
		return 1
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		logger.Error("failed to create output", logging.String("path", outputPath), logging.Error(err))
		fmt.Fprintf(stderr, "Error reading/writing files: %v\n", err)
		return 1
	}

	_, runErr := runner.Run(ctx, in, out)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		logger.Error("run failed", logging.Error(runErr))
		fmt.Fprintf(stderr, "Error reading/writing files: %v\n", runErr)
		return 1
	}

	if journal != nil {
		failed := journal.GetEvents(&audit.Filter{Status: audit.StatusFailure})
		logger.Info("audit journal",
			logging.Int64("recorded", journal.Recorded()),
			logging.Int("retained", journal.Len()),
			logging.Int("failed", len(failed)))
	}

	if registry != nil && cfg.Metrics.Textfile != "" {
		if err := registry.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Error("failed to write metrics", logging.String("path", cfg.Metrics.Textfile), logging.Error(err))
			return 1
		}
	}
	return 0
}
