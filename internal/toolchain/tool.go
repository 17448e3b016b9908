// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Tool record. A Tool is filled in by the builder one
// field at a time and sealed once the enclosing toolchain completes. Setters
// on a sealed Tool panic: a sealed Tool is shared between goroutines without
// locking, so a late write is a programming error rather than a user error.
package toolchain

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/toolchaingo/internal/substitution"
)

// Tool is the configuration of one category of build step.
type Tool struct {
	category Category

	command                substitution.Pattern
	defaultOutputExtension string
	depfile                substitution.Pattern
	depsFormat             DepsFormat
	description            substitution.Pattern
	libSwitch              string
	libDirSwitch           string
	linkOutput             substitution.Pattern
	dependOutput           substitution.Pattern
	runtimeLinkOutput      substitution.Pattern
	outputPrefix           string
	precompiledHeaderType  PrecompiledHeaderType
	restat                 bool
	rspfile                substitution.Pattern
	rspfileContent         substitution.Pattern
	outputs                substitution.List

	definedFrom hcl.Range
	kinds       substitution.Bits
	sealed      bool
}

// NewTool returns an empty, unsealed Tool for category.
func NewTool(category Category) *Tool {
	return &Tool{category: category}
}

func (t *Tool) mustBeMutable(field string) {
	if t.sealed {
		panic(fmt.Sprintf("toolchain: set %s on sealed %s tool", field, t.category))
	}
}

func (t *Tool) Category() Category                      { return t.category }
func (t *Tool) Command() substitution.Pattern           { return t.command }
func (t *Tool) DefaultOutputExtension() string          { return t.defaultOutputExtension }
func (t *Tool) Depfile() substitution.Pattern           { return t.depfile }
func (t *Tool) DepsFormat() DepsFormat                  { return t.depsFormat }
func (t *Tool) Description() substitution.Pattern       { return t.description }
func (t *Tool) LibSwitch() string                       { return t.libSwitch }
func (t *Tool) LibDirSwitch() string                    { return t.libDirSwitch }
func (t *Tool) LinkOutput() substitution.Pattern        { return t.linkOutput }
func (t *Tool) DependOutput() substitution.Pattern      { return t.dependOutput }
func (t *Tool) RuntimeLinkOutput() substitution.Pattern { return t.runtimeLinkOutput }
func (t *Tool) OutputPrefix() string                    { return t.outputPrefix }
func (t *Tool) PrecompiledHeaderType() PrecompiledHeaderType {
	return t.precompiledHeaderType
}
func (t *Tool) Restat() bool                         { return t.restat }
func (t *Tool) Rspfile() substitution.Pattern        { return t.rspfile }
func (t *Tool) RspfileContent() substitution.Pattern { return t.rspfileContent }
func (t *Tool) Outputs() substitution.List           { return t.outputs }
func (t *Tool) DefinedFrom() hcl.Range               { return t.definedFrom }
func (t *Tool) Sealed() bool                         { return t.sealed }

func (t *Tool) SetCommand(p substitution.Pattern) {
	t.mustBeMutable("command")
	t.command = p
}

func (t *Tool) SetDefaultOutputExtension(ext string) {
	t.mustBeMutable("default_output_extension")
	t.defaultOutputExtension = ext
}

func (t *Tool) SetDepfile(p substitution.Pattern) {
	t.mustBeMutable("depfile")
	t.depfile = p
}

func (t *Tool) SetDepsFormat(f DepsFormat) {
	t.mustBeMutable("depsformat")
	t.depsFormat = f
}

func (t *Tool) SetDescription(p substitution.Pattern) {
	t.mustBeMutable("description")
	t.description = p
}

func (t *Tool) SetLibSwitch(s string) {
	t.mustBeMutable("lib_switch")
	t.libSwitch = s
}

func (t *Tool) SetLibDirSwitch(s string) {
	t.mustBeMutable("lib_dir_switch")
	t.libDirSwitch = s
}

func (t *Tool) SetLinkOutput(p substitution.Pattern) {
	t.mustBeMutable("link_output")
	t.linkOutput = p
}

func (t *Tool) SetDependOutput(p substitution.Pattern) {
	t.mustBeMutable("depend_output")
	t.dependOutput = p
}

func (t *Tool) SetRuntimeLinkOutput(p substitution.Pattern) {
	t.mustBeMutable("runtime_link_output")
	t.runtimeLinkOutput = p
}

func (t *Tool) SetOutputPrefix(s string) {
	t.mustBeMutable("output_prefix")
	t.outputPrefix = s
}

func (t *Tool) SetPrecompiledHeaderType(p PrecompiledHeaderType) {
	t.mustBeMutable("precompiled_header_type")
	t.precompiledHeaderType = p
}

func (t *Tool) SetRestat(b bool) {
	t.mustBeMutable("restat")
	t.restat = b
}

func (t *Tool) SetRspfile(p substitution.Pattern) {
	t.mustBeMutable("rspfile")
	t.rspfile = p
}

func (t *Tool) SetRspfileContent(p substitution.Pattern) {
	t.mustBeMutable("rspfile_content")
	t.rspfileContent = p
}

func (t *Tool) SetOutputs(l substitution.List) {
	t.mustBeMutable("outputs")
	t.outputs = l
}

func (t *Tool) SetDefinedFrom(rng hcl.Range) {
	t.mustBeMutable("defined_from")
	t.definedFrom = rng
}

// Seal freezes the tool and records the placeholders it references.
// Sealing twice is a no-op.
func (t *Tool) Seal() {
	if t.sealed {
		return
	}
	for _, p := range []substitution.Pattern{
		t.command, t.depfile, t.description, t.linkOutput, t.dependOutput,
		t.runtimeLinkOutput, t.rspfile, t.rspfileContent,
	} {
		t.kinds.Add(p.RequiredKinds()...)
	}
	t.kinds.Add(t.outputs.RequiredKinds()...)
	t.sealed = true
}

// SubstitutionKinds returns every placeholder the tool references. It is
// only populated once the tool is sealed.
func (t *Tool) SubstitutionKinds() substitution.Bits {
	return t.kinds
}
