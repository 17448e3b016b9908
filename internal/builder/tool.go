package builder

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/scope"
	"github.com/specialistvlad/toolchaingo/internal/substitution"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
)

// validators is the pair of placeholder checks used for one category: one
// for ordinary pattern fields and one for "outputs".
type validators struct {
	field   substitution.Validator
	outputs substitution.Validator
}

func validatorsFor(c toolchain.Category) validators {
	switch {
	case c.IsCompiler():
		return validators{substitution.IsValidCompilerSubstitution, substitution.IsValidCompilerOutputsSubstitution}
	case c.IsLinker():
		return validators{substitution.IsValidLinkerSubstitution, substitution.IsValidLinkerOutputsSubstitution}
	case c == toolchain.CategoryCopy || c == toolchain.CategoryCopyBundleData:
		return validators{substitution.IsValidCopySubstitution, substitution.IsValidCopySubstitution}
	case c == toolchain.CategoryCompileXCAssets:
		return validators{substitution.IsValidCompileAssetsSubstitution, substitution.IsValidCompileAssetsSubstitution}
	}
	return validators{substitution.IsValidToolSubstitution, substitution.IsValidToolSubstitution}
}

// toolFieldReader reads one optional field of a tool block.
type toolFieldReader struct {
	name string
	read func(s *scope.Scope, t *toolchain.Tool, v validators) error
}

func patternField(name string, set func(*toolchain.Tool) func(substitution.Pattern)) toolFieldReader {
	return toolFieldReader{name, func(s *scope.Scope, t *toolchain.Tool, v validators) error {
		return readPattern(s, name, v.field, set(t))
	}}
}

func stringField(name string, set func(*toolchain.Tool) func(string)) toolFieldReader {
	return toolFieldReader{name, func(s *scope.Scope, t *toolchain.Tool, _ validators) error {
		return readString(s, name, set(t))
	}}
}

// toolFieldReaders lists every optional field in the order it is read. The
// order fixes which error is reported when a block has several problems.
var toolFieldReaders = []toolFieldReader{
	patternField("command", func(t *toolchain.Tool) func(substitution.Pattern) { return t.SetCommand }),
	{"default_output_extension", func(s *scope.Scope, t *toolchain.Tool, _ validators) error {
		return readOutputExtension(s, t.SetDefaultOutputExtension)
	}},
	patternField("depfile", func(t *toolchain.Tool) func(substitution.Pattern) { return t.SetDepfile }),
	{"depsformat", func(s *scope.Scope, t *toolchain.Tool, _ validators) error {
		return readDepsFormat(s, t.SetDepsFormat)
	}},
	patternField("description", func(t *toolchain.Tool) func(substitution.Pattern) { return t.SetDescription }),
	stringField("lib_switch", func(t *toolchain.Tool) func(string) { return t.SetLibSwitch }),
	stringField("lib_dir_switch", func(t *toolchain.Tool) func(string) { return t.SetLibDirSwitch }),
	patternField("link_output", func(t *toolchain.Tool) func(substitution.Pattern) { return t.SetLinkOutput }),
	patternField("depend_output", func(t *toolchain.Tool) func(substitution.Pattern) { return t.SetDependOutput }),
	patternField("runtime_link_output", func(t *toolchain.Tool) func(substitution.Pattern) { return t.SetRuntimeLinkOutput }),
	stringField("output_prefix", func(t *toolchain.Tool) func(string) { return t.SetOutputPrefix }),
	{"precompiled_header_type", func(s *scope.Scope, t *toolchain.Tool, _ validators) error {
		return readPrecompiledHeaderType(s, t.SetPrecompiledHeaderType)
	}},
	{"restat", func(s *scope.Scope, t *toolchain.Tool, _ validators) error {
		return readBool(s, "restat", t.SetRestat)
	}},
	patternField("rspfile", func(t *toolchain.Tool) func(substitution.Pattern) { return t.SetRspfile }),
	patternField("rspfile_content", func(t *toolchain.Tool) func(substitution.Pattern) { return t.SetRspfileContent }),
}

// BuildTool reads and validates a tool of category c from the bindings of
// s. blockRange locates the tool block for errors that have no better
// position. The returned tool is not sealed; its toolchain seals it.
func BuildTool(c toolchain.Category, s *scope.Scope, blockRange hcl.Range) (*toolchain.Tool, error) {
	tool, err := buildTool(c, s, blockRange)
	if err != nil {
		if be, ok := err.(*builderr.Error); ok && be.Category == "" {
			be.WithCategory(c.String())
		}
		return nil, err
	}
	return tool, nil
}

func buildTool(c toolchain.Category, s *scope.Scope, blockRange hcl.Range) (*toolchain.Tool, error) {
	v := validatorsFor(c)
	tool := toolchain.NewTool(c)

	for _, r := range toolFieldReaders {
		if err := r.read(s, tool, v); err != nil {
			return nil, err
		}
	}

	// Stamp and copy-like tools compute their outputs internally.
	if !c.SynthesizesOutputs() {
		if err := readOutputs(s, v.outputs, blockRange, tool.SetOutputs); err != nil {
			return nil, err
		}
	}

	if err := checkToolConsistency(c, tool, blockRange); err != nil {
		return nil, err
	}

	if err := s.CheckUnused(); err != nil {
		return nil, err
	}

	tool.SetDefinedFrom(blockRange)
	return tool, nil
}

// checkToolConsistency validates relationships between fields.
func checkToolConsistency(c toolchain.Category, tool *toolchain.Tool, blockRange hcl.Range) error {
	if err := checkLinkOutput(c, tool, "link_output", tool.LinkOutput(), blockRange); err != nil {
		return err
	}
	if err := checkLinkOutput(c, tool, "depend_output", tool.DependOutput(), blockRange); err != nil {
		return err
	}
	if tool.LinkOutput().Empty() != tool.DependOutput().Empty() {
		return builderr.New(builderr.AsymmetricLinkOutputs,
			"Both link_output and depend_output should either be specified or they should both be empty.").
			At(&blockRange)
	}
	if err := checkLinkOutput(c, tool, "runtime_link_output", tool.RuntimeLinkOutput(), blockRange); err != nil {
		return err
	}
	if !tool.Rspfile().Empty() && tool.RspfileContent().Empty() {
		return builderr.New(builderr.MissingRequiredField, `"rspfile_content" must be specified when "rspfile" is set.`).
			WithField("rspfile_content").
			At(&blockRange)
	}
	return nil
}

func checkLinkOutput(c toolchain.Category, tool *toolchain.Tool, field string, p substitution.Pattern, blockRange hcl.Range) error {
	if p.Empty() {
		return nil
	}
	if !c.IsSharedLink() {
		return builderr.Newf(builderr.InvalidFieldForCategory, "This tool specifies a %s.", field).
			WithDetail("This is only valid for solink and solink_module tools.").
			WithField(field).
			At(&blockRange)
	}
	if !tool.Outputs().Contains(p) {
		return builderr.Newf(builderr.OutputNotInOutputsList, "This tool's %s is bad.", field).
			WithDetail("It must match one of the outputs.").
			WithField(field).
			At(&blockRange)
	}
	return nil
}

// runTool implements the tool block.
func (b *Builder) runTool(ctx context.Context, s *scope.Scope, fr *frame, block *hclsyntax.Block) error {
	if fr.toolchain == nil {
		return builderr.New(builderr.NotInsideToolchain, "tool() called outside of toolchain().").
			WithDetail("The tool() function can only be used inside a toolchain() definition.").
			At(rangePtr(block.TypeRange))
	}
	if err := labelArgs(block, 1); err != nil {
		return err
	}

	name := block.Labels[0]
	c, ok := toolchain.CategoryByName(name)
	if !ok {
		return builderr.Newf(builderr.UnknownToolType, "Unknown tool type %q", name).
			At(rangePtr(block.LabelRanges[0]))
	}

	child := s.NewChild()
	if err := b.exec(ctx, child, fr, block.Body); err != nil {
		return err
	}

	tool, err := BuildTool(c, child, block.DefRange())
	if err != nil {
		return err
	}

	if fr.toolchain.Tool(c) != nil {
		return builderr.Newf(builderr.DuplicateTool, "Duplicate %s tool.", c).
			WithDetail("A toolchain may define each tool only once.").
			WithCategory(c.String()).
			At(rangePtr(block.DefRange()))
	}
	fr.toolchain.SetTool(tool)

	b.observer.ToolDefined(ctx, fr.toolchain.Label(), tool)
	return nil
}
