package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/toolchaingo/internal/loader"
	"github.com/specialistvlad/toolchaingo/internal/observe"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const tracerName = "github.com/specialistvlad/toolchaingo"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader *loader.Loader
	tp     *sdktrace.TracerProvider
}

// NewApp returns an App that writes command output to outW and logs to logW.
// Call Close when done to flush traces.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg, logW)
	logger.Debug("Logger configured successfully.")

	opts := []loader.Option{
		loader.WithBuildConfig(cfg.BuildConfig),
		loader.WithWorkers(cfg.Workers),
		loader.WithVerbose(cfg.Verbose),
	}

	a := &App{outW: outW, logger: logger, config: cfg}
	if cfg.Trace {
		a.tp = observe.NewLogTracerProvider(logger)
		opts = append(opts, loader.WithTracer(a.tp.Tracer(tracerName)))
		logger.Debug("Tracing enabled.")
	}
	a.loader = loader.New(opts...)
	return a
}

// Close flushes and stops the tracer provider, if any.
func (a *App) Close(ctx context.Context) error {
	if a.tp == nil {
		return nil
	}
	return a.tp.Shutdown(ctx)
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
