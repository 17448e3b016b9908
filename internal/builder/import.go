package builder

import (
	"context"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/ctxlog"
	"github.com/specialistvlad/toolchaingo/internal/scope"
)

// runImport implements the import block. The imported file runs in its own
// scope flagged as an import, and its bindings are copied into s as used.
func (b *Builder) runImport(ctx context.Context, s *scope.Scope, _ *frame, block *hclsyntax.Block) error {
	if err := labelArgs(block, 1); err != nil {
		return err
	}
	if b.importer == nil {
		return builderr.New(builderr.SyntaxCannotOccurHere, "import() is not available here.").
			At(rangePtr(block.DefRange()))
	}
	if len(block.Body.Attributes) > 0 || len(block.Body.Blocks) > 0 {
		return builderr.New(builderr.UnexpectedArguments, "import() takes no block contents.").
			At(rangePtr(block.Body.SrcRange))
	}

	path := block.Labels[0]
	body, dir, err := b.importer.Import(ctx, s.SourceDir(), path)
	if err != nil {
		return builderr.Newf(builderr.EvalFailed, "Unable to import %q.", path).
			Wrap(err).
			At(rangePtr(block.LabelRanges[0]))
	}

	imported := scope.New(dir)
	imported.SetFlags(scope.ProcessingImport)
	if err := b.exec(ctx, imported, &frame{}, body); err != nil {
		return err
	}

	for _, name := range imported.Names() {
		v, _ := imported.GetLocal(name)
		s.Set(name, v.Value, v.Range)
		s.MarkUsed(name)
	}
	ctxlog.FromContext(ctx).Debug("Imported file.", "path", path, "bindings", len(imported.Names()))
	return nil
}
