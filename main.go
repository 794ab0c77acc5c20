package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/olehluchkiv/partcheck/internal/config"
	"github.com/olehluchkiv/partcheck/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// UsageError reports a command line that can't be run. The usage text is
// printed with it and no analysis is attempted.
type UsageError struct {
	Msg   string
	Usage string
}

func (e *UsageError) Error() string { return e.Msg }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "Error: %s\n\n%s", usage.Msg, usage.Usage)
		return 1
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// app carries the global flags and output streams shared by subcommands.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	logFile    string
	logLevel   string
	configPath string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "partcheck",
		Short: "Find unsatisfied imports and unimplemented services in a composition catalog",
		Long: `partcheck indexes the exports of a composition catalog and reports
import contracts nobody exports and service contracts that only have
placeholder implementations.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Msg: err.Error(), Usage: cmd.UsageString()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.logFile, "log-file", "", "also write logs to this file")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&a.configPath, "config", "", "config file (default: $"+config.EnvConfigPath+")")

	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newGraphCmd(a))
	return root
}

// start sets up logging and loads the configuration for one command run.
func (a *app) start() (*slog.Logger, config.Config, func(), error) {
	level, err := logging.ParseLevel(a.logLevel)
	if err != nil {
		return nil, config.Config{}, nil, &UsageError{Msg: err.Error()}
	}
	logger, cleanup, err := logging.Setup(a.stderr, a.logFile, level)
	if err != nil {
		return nil, config.Config{}, nil, fmt.Errorf("setting up logging: %w", err)
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		cleanup()
		return nil, config.Config{}, nil, err
	}
	return logger, cfg, cleanup, nil
}
