// Command netmatrix-console is an interactive terminal for the network
// command language.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dd0wney/netmatrix/pkg/audit"
	"github.com/dd0wney/netmatrix/pkg/command"
	"github.com/dd0wney/netmatrix/pkg/config"
	"github.com/dd0wney/netmatrix/pkg/engine"
	"github.com/dd0wney/netmatrix/pkg/logging"
	"github.com/mattn/go-isatty"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("netmatrix-console", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	logPath := fs.String("log", "", "Write the JSON log to this file instead of discarding it")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// The terminal belongs to the UI, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "Error opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.NewJSONLogger(logOut, cfg.Level())

	engineConfig := engine.EngineConfig{Logger: logger}
	var journal *audit.Journal
	if cfg.Audit.Enabled {
		journal = audit.NewJournal(cfg.Audit.BufferSize)
		engineConfig.Journal = journal
	}
	eng := engine.NewEngineWithConfig(engineConfig)
	dispatcher := command.NewDispatcher(eng)

	// Piped input gets plain line-at-a-time output instead of the UI.
	if !isatty.IsTerminal(stdin.Fd()) && !isatty.IsCygwinTerminal(stdin.Fd()) {
		if _, err := command.NewRunner(dispatcher, logger).Run(context.Background(), stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "Error running commands: %v\n", err)
			return 1
		}
		return 0
	}

	p := tea.NewProgram(newModel(dispatcher, journal), tea.WithInput(stdin), tea.WithOutput(stdout), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "Error running console: %v\n", err)
		return 1
	}
	return 0
}
