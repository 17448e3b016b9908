package builder

import (
	"context"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/ctxlog"
	"github.com/specialistvlad/toolchaingo/internal/scope"
)

// runToolchainArgs implements the toolchain_args block. Its bindings are
// captured verbatim as argument overrides on the enclosing toolchain.
func (b *Builder) runToolchainArgs(ctx context.Context, s *scope.Scope, fr *frame, block *hclsyntax.Block) error {
	if fr.toolchain == nil {
		return builderr.New(builderr.NotInsideToolchain, "toolchain_args() called outside of toolchain().").
			WithDetail("The toolchain_args() function can only be used inside a toolchain() definition.").
			At(rangePtr(block.TypeRange))
	}
	if err := labelArgs(block, 0); err != nil {
		return err
	}

	child := s.NewChild()
	if err := b.exec(ctx, child, fr, block.Body); err != nil {
		return err
	}
	values := child.Values()
	fr.toolchain.MergeArgs(values)

	ctxlog.FromContext(ctx).Debug("Captured toolchain args.", "toolchain", fr.toolchain.Label().String(), "count", len(values))
	return nil
}
