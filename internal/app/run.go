package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/toolchaingo/internal/ctxlog"
	"github.com/specialistvlad/toolchaingo/internal/describe"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/loader"
)

func (a *App) load(ctx context.Context) (*loader.Result, error) {
	a.logger.Debug("Loading declarations...", "root", a.config.Root, "build_config", a.config.BuildConfig)
	res, err := a.loader.Load(ctx, a.config.Root)
	if err != nil {
		return nil, fmt.Errorf("configuration failed: %w", err)
	}
	return res, nil
}

// Check runs a configuration pass and prints every defined toolchain.
func (a *App) Check(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	res, err := a.load(ctx)
	if err != nil {
		return err
	}

	for _, tc := range res.Registry.All() {
		fmt.Fprintf(a.outW, "%s (%d tools)\n", tc.Label(), len(tc.Categories()))
	}
	fmt.Fprintf(a.outW, "OK: %d toolchains defined in %d files.\n", res.Registry.Len(), len(res.Files))
	return nil
}

// Describe runs a configuration pass and writes the selected toolchains, or
// all of them, in the configured output format. Labels are resolved relative
// to the source root.
func (a *App) Describe(ctx context.Context, toolchains []string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	only := make([]label.Label, 0, len(toolchains))
	for _, raw := range toolchains {
		l, err := label.ResolveToolchain(label.RootDir, raw)
		if err != nil {
			return err
		}
		only = append(only, l)
	}

	res, err := a.load(ctx)
	if err != nil {
		return err
	}
	doc, err := describe.Build(res.Registry, only...)
	if err != nil {
		return err
	}
	return describe.Write(a.outW, doc, describe.Format(a.config.OutputFormat))
}
