package builder

import (
	"context"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/ctxlog"
	"github.com/specialistvlad/toolchaingo/internal/scope"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
)

// frame is the evaluation state handed to nested calls. toolchain is the
// declaration currently being built, or nil outside a toolchain block.
type frame struct {
	toolchain *toolchain.Toolchain
}

// blockFunc implements one function callable as a block.
type blockFunc func(b *Builder, ctx context.Context, s *scope.Scope, fr *frame, block *hclsyntax.Block) error

func lookupFunction(name string) blockFunc {
	switch name {
	case "toolchain":
		return func(b *Builder, ctx context.Context, s *scope.Scope, fr *frame, block *hclsyntax.Block) error {
			_, err := b.runToolchain(ctx, s, fr, block)
			return err
		}
	case "tool":
		return (*Builder).runTool
	case "toolchain_args":
		return (*Builder).runToolchainArgs
	case "import":
		return (*Builder).runImport
	}
	return nil
}

// Exec runs every statement of body in s, in source order.
func (b *Builder) Exec(ctx context.Context, s *scope.Scope, body *hclsyntax.Body) error {
	return b.exec(ctx, s, &frame{}, body)
}

// statement is either an attribute or a block of a body.
type statement struct {
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

func (st statement) start() int {
	if st.attr != nil {
		return st.attr.SrcRange.Start.Byte
	}
	return st.block.TypeRange.Start.Byte
}

func statements(body *hclsyntax.Body) []statement {
	out := make([]statement, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		out = append(out, statement{attr: attr})
	}
	for _, block := range body.Blocks {
		out = append(out, statement{block: block})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start() < out[j].start() })
	return out
}

func (b *Builder) exec(ctx context.Context, s *scope.Scope, fr *frame, body *hclsyntax.Body) error {
	logger := ctxlog.FromContext(ctx)
	for _, st := range statements(body) {
		if st.attr != nil {
			if err := assign(s, st.attr); err != nil {
				return err
			}
			continue
		}

		block := st.block
		fn := lookupFunction(block.Type)
		if fn == nil {
			rng := block.TypeRange
			return builderr.Newf(builderr.UnknownFunction, "Unknown function %q.", block.Type).
				WithDetail("Valid functions are toolchain, tool, toolchain_args and import.").
				At(&rng)
		}
		logger.Debug("Calling block function.", "function", block.Type, "labels", block.Labels, "range", block.DefRange().String())
		if err := fn(b, ctx, s, fr, block); err != nil {
			return err
		}
	}
	return nil
}

// assign evaluates attr in s and binds the result. Every variable the
// expression references counts as used.
func assign(s *scope.Scope, attr *hclsyntax.Attribute) error {
	for _, tr := range attr.Expr.Variables() {
		s.MarkUsed(tr.RootName())
	}
	val, diags := attr.Expr.Value(s.EvalContext())
	if err := builderr.FromDiagnostics(diags); err != nil {
		return err
	}
	s.Set(attr.Name, val, attr.SrcRange)
	return nil
}

// labelArgs checks that block has exactly n labels.
func labelArgs(block *hclsyntax.Block, n int) error {
	if len(block.Labels) == n {
		return nil
	}
	rng := block.DefRange()
	var e *builderr.Error
	switch n {
	case 0:
		e = builderr.New(builderr.UnexpectedArguments, "This function takes no arguments.")
	case 1:
		e = builderr.Newf(builderr.UnexpectedArguments, "Expecting exactly one argument, got %d.", len(block.Labels)).
			WithDetail(`Use %s "name" { ... }.`, block.Type)
	default:
		e = builderr.Newf(builderr.UnexpectedArguments, "Expecting %d arguments, got %d.", n, len(block.Labels))
	}
	return e.At(&rng)
}

func rangePtr(r hcl.Range) *hcl.Range {
	return &r
}
