package observe

import (
	"context"

	"github.com/specialistvlad/toolchaingo/internal/ctxlog"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
)

// Log reports definitions through the logger carried in the context.
// Definition events are logged at Info when Verbose is set and at Debug
// otherwise.
type Log struct {
	Verbose bool
}

func (o Log) log(ctx context.Context, msg string, args ...any) {
	logger := ctxlog.FromContext(ctx)
	if o.Verbose {
		logger.Info(msg, args...)
		return
	}
	logger.Debug(msg, args...)
}

func (o Log) ToolchainStarted(ctx context.Context, l label.Label) context.Context {
	o.log(ctx, "Defining toolchain", "label", l.String())
	return ctx
}

func (o Log) ToolDefined(ctx context.Context, l label.Label, tool *toolchain.Tool) {
	o.log(ctx, "Defining tool", "toolchain", l.String(), "tool", tool.Category().String())
}

func (o Log) ToolchainFinished(ctx context.Context, l label.Label, tc *toolchain.Toolchain, err error) {
	if err != nil {
		ctxlog.FromContext(ctx).Debug("Toolchain definition failed.", "label", l.String(), "error", err)
		return
	}
	o.log(ctx, "Defined toolchain", "label", l.String(), "tools", len(tc.Categories()), "concurrent_links", tc.ConcurrentLinks())
}
