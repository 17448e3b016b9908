package builder

import (
	"context"
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/scope"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
)

// BuildToolchain evaluates a toolchain block declared in s, seals the result
// and hands it to the scope's item collector.
func (b *Builder) BuildToolchain(ctx context.Context, s *scope.Scope, block *hclsyntax.Block) (*toolchain.Toolchain, error) {
	return b.runToolchain(ctx, s, &frame{}, block)
}

func (b *Builder) runToolchain(ctx context.Context, s *scope.Scope, fr *frame, block *hclsyntax.Block) (*toolchain.Toolchain, error) {
	if err := checkToolchainContext(s, fr, block); err != nil {
		return nil, err
	}
	if err := labelArgs(block, 1); err != nil {
		return nil, err
	}

	name := block.Labels[0]
	if !label.ValidName(name) {
		return nil, builderr.Newf(builderr.UnexpectedArguments, "Invalid toolchain name %q.", name).
			WithDetail("A toolchain name may contain only letters, digits and the characters _ . + -").
			At(rangePtr(block.LabelRanges[0]))
	}
	// Toolchain labels never carry a toolchain qualifier of their own.
	l := label.New(s.SourceDir(), name)

	ctx = b.observer.ToolchainStarted(ctx, l)
	tc, err := b.defineToolchain(ctx, s, l, block)
	if err != nil {
		b.observer.ToolchainFinished(ctx, l, nil, err)
		return nil, err
	}
	b.observer.ToolchainFinished(ctx, l, tc, nil)
	return tc, nil
}

func checkToolchainContext(s *scope.Scope, fr *frame, block *hclsyntax.Block) error {
	var summary string
	switch {
	case fr.toolchain != nil:
		summary = "toolchain() can not be nested."
	case s.IsProcessingImport():
		summary = "Not valid from an import."
	case s.IsProcessingBuildConfig():
		summary = "Not valid from the build config."
	default:
		return nil
	}
	return builderr.New(builderr.SyntaxCannotOccurHere, summary).
		WithDetail("Toolchains may only be declared at the top level of a declaration file.").
		At(rangePtr(block.DefRange()))
}

func (b *Builder) defineToolchain(ctx context.Context, s *scope.Scope, l label.Label, block *hclsyntax.Block) (*toolchain.Toolchain, error) {
	tc := toolchain.New(l, block.DefRange())
	tc.SetVisibility(toolchain.VisibilityPublic)

	child := s.NewChild()
	if err := b.exec(ctx, child, &frame{toolchain: tc}, block.Body); err != nil {
		return nil, err
	}

	if err := b.readDeps(child, tc); err != nil {
		return nil, err
	}

	err := readInt(child, "concurrent_links", func(n int64, v *scope.Value) error {
		if n < 0 || n > math.MaxInt32 {
			return builderr.New(builderr.ValueOutOfRange, "Value out of range.").
				WithDetail("concurrent_links must be between 0 and %d, got %d.", math.MaxInt32, n).
				WithField("concurrent_links").
				At(&v.Range)
		}
		tc.SetConcurrentLinks(int(n))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := child.CheckUnused(); err != nil {
		return nil, err
	}

	tc.SetupComplete()

	collector := s.ItemCollector()
	if collector == nil {
		return nil, builderr.New(builderr.RegistryUnavailable, "Can't define a toolchain in this context.").
			At(rangePtr(block.DefRange()))
	}
	if err := collector.Insert(tc); err != nil {
		return nil, fmt.Errorf("%s: registering toolchain %s: %w", block.DefRange(), l, err)
	}
	return tc, nil
}

// readDeps resolves the deps list against the declaring directory. Each
// entry names a target, so unqualified entries get the default toolchain.
func (b *Builder) readDeps(s *scope.Scope, tc *toolchain.Toolchain) error {
	const name = "deps"
	v, ok := s.GetValue(name, true)
	if !ok {
		return nil
	}
	raw, err := decodeStringList(name, v)
	if err != nil {
		return err
	}
	deps := make([]label.Label, 0, len(raw))
	for _, r := range raw {
		dep, err := label.Resolve(s.SourceDir(), b.defaultToolchain, r)
		if err != nil {
			return builderr.New(builderr.EvalFailed, "Invalid dependency label.").
				WithField(name).
				Wrap(err).
				At(&v.Range)
		}
		deps = append(deps, dep)
	}
	tc.SetDeps(deps)
	return nil
}
