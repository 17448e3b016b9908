package builder

import (
	"context"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
)

// Observer is notified as toolchains and tools are defined.
type Observer interface {
	// ToolchainStarted is called before the toolchain block runs. The returned
	// context is used for the rest of the toolchain's evaluation.
	ToolchainStarted(ctx context.Context, l label.Label) context.Context
	ToolDefined(ctx context.Context, l label.Label, tool *toolchain.Tool)
	// ToolchainFinished is called once per started toolchain. tc is nil when
	// err is set.
	ToolchainFinished(ctx context.Context, l label.Label, tc *toolchain.Toolchain, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) ToolchainStarted(ctx context.Context, _ label.Label) context.Context {
	return ctx
}
func (NopObserver) ToolDefined(context.Context, label.Label, *toolchain.Tool) {}
func (NopObserver) ToolchainFinished(context.Context, label.Label, *toolchain.Toolchain, error) {
}

// Importer resolves the file named by an import block. It returns the parsed
// body and the source directory of the imported file.
type Importer interface {
	Import(ctx context.Context, fromDir, path string) (*hclsyntax.Body, string, error)
}

// Builder evaluates declaration bodies.
type Builder struct {
	observer         Observer
	importer         Importer
	defaultToolchain label.Label
}

// Option configures a Builder.
type Option func(*Builder)

// WithObserver sets the observer notified of definitions.
func WithObserver(o Observer) Option {
	return func(b *Builder) {
		if o != nil {
			b.observer = o
		}
	}
}

// WithImporter enables import blocks.
func WithImporter(i Importer) Option {
	return func(b *Builder) { b.importer = i }
}

// WithDefaultToolchain sets the toolchain that unqualified dependency labels
// are resolved against.
func WithDefaultToolchain(l label.Label) Option {
	return func(b *Builder) { b.defaultToolchain = l }
}

// New returns a Builder configured by opts.
func New(opts ...Option) *Builder {
	b := &Builder{observer: NopObserver{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}
