package observe

import (
	"context"

	"github.com/specialistvlad/toolchaingo/internal/builder"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
)

// Multi forwards every event to each observer in order. The context returned
// by one observer's ToolchainStarted is passed to the next.
type Multi []builder.Observer

func (m Multi) ToolchainStarted(ctx context.Context, l label.Label) context.Context {
	for _, o := range m {
		ctx = o.ToolchainStarted(ctx, l)
	}
	return ctx
}

func (m Multi) ToolDefined(ctx context.Context, l label.Label, tool *toolchain.Tool) {
	for _, o := range m {
		o.ToolDefined(ctx, l, tool)
	}
}

func (m Multi) ToolchainFinished(ctx context.Context, l label.Label, tc *toolchain.Toolchain, err error) {
	for i := len(m) - 1; i >= 0; i-- {
		m[i].ToolchainFinished(ctx, l, tc, err)
	}
}

var (
	_ builder.Observer = Log{}
	_ builder.Observer = (*Trace)(nil)
	_ builder.Observer = Multi(nil)
)
