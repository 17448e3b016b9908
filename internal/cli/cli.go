package cli

import (
	"context"
	"errors"
	"io"

	"github.com/specialistvlad/toolchaingo/internal/app"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

type globalFlags struct {
	buildConfig string
	logFormat   string
	logLevel    string
	workers     int
	verbose     bool
	trace       bool
}

// NewRootCommand builds the toolchaingo command tree. Command output goes to
// outW; logs and usage errors go to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "toolchaingo",
		Short: "Define and validate build toolchains",
		Long: "toolchaingo evaluates toolchain declarations written in HCL and validates\n" +
			"every tool definition against the rules for its category.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&flags.buildConfig, "build-config", "", "Build-config file evaluated before all others, relative to PATH.")
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.IntVar(&flags.workers, "workers", 0, "Number of files evaluated concurrently. 0 uses one per CPU.")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log every toolchain and tool as it is defined.")
	pf.BoolVar(&flags.trace, "trace", false, "Log a trace span for every toolchain definition.")

	root.AddCommand(newCheckCommand(&flags, outW, errW), newDescCommand(&flags, outW, errW))
	return root
}

func newConfig(flags *globalFlags, args []string, outputFormat string) (*app.Config, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	cfg, err := app.NewConfig(app.Config{
		Root:         path,
		BuildConfig:  flags.buildConfig,
		LogFormat:    flags.logFormat,
		LogLevel:     flags.logLevel,
		OutputFormat: outputFormat,
		Workers:      flags.workers,
		Verbose:      flags.verbose,
		Trace:        flags.trace,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

// runApp creates the App, runs fn and closes the App. Errors other than
// ExitError become ExitFailure.
func runApp(ctx context.Context, cfg *app.Config, outW, errW io.Writer, fn func(context.Context, *app.App) error) error {
	a := app.NewApp(outW, errW, cfg)
	err := fn(ctx, a)
	if cerr := a.Close(ctx); err == nil {
		err = cerr
	}
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	// Unknown commands and argument count errors come back unwrapped.
	return usageError(err)
}
