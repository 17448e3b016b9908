// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Toolchain record: a label, the tools keyed by
// category, and the toolchain-level settings read from the declaring block.
package toolchain

import (
	"fmt"
	"maps"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/substitution"
	"github.com/zclconf/go-cty/cty"
)

// Visibility controls which targets may depend on a toolchain.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
)

func (v Visibility) String() string {
	if v == VisibilityPublic {
		return "public"
	}
	return "private"
}

// Toolchain is a named collection of tools.
type Toolchain struct {
	label           label.Label
	definedFrom     hcl.Range
	tools           [numCategories]*Tool
	deps            []label.Label
	concurrentLinks int
	visibility      Visibility
	args            map[string]cty.Value

	kinds         substitution.Bits
	setupComplete bool
}

// New returns an empty toolchain identified by l.
func New(l label.Label, definedFrom hcl.Range) *Toolchain {
	return &Toolchain{label: l, definedFrom: definedFrom}
}

func (tc *Toolchain) mustBeMutable(what string) {
	if tc.setupComplete {
		panic(fmt.Sprintf("toolchain: set %s on completed toolchain %s", what, tc.label))
	}
}

func (tc *Toolchain) Label() label.Label     { return tc.label }
func (tc *Toolchain) DefinedFrom() hcl.Range { return tc.definedFrom }
func (tc *Toolchain) ConcurrentLinks() int   { return tc.concurrentLinks }
func (tc *Toolchain) Visibility() Visibility { return tc.visibility }
func (tc *Toolchain) IsSetupComplete() bool  { return tc.setupComplete }

// Tool returns the tool for c, or nil if the toolchain has none.
func (tc *Toolchain) Tool(c Category) *Tool {
	if c <= CategoryNone || c >= numCategories {
		return nil
	}
	return tc.tools[c]
}

// SetTool stores t under its category. It panics if the category already has
// a tool; callers check Tool first.
func (tc *Toolchain) SetTool(t *Tool) {
	tc.mustBeMutable("tool " + t.Category().String())
	if tc.tools[t.Category()] != nil {
		panic(fmt.Sprintf("toolchain: %s tool already set on %s", t.Category(), tc.label))
	}
	tc.tools[t.Category()] = t
}

// Categories returns the categories that have a tool, in category order.
func (tc *Toolchain) Categories() []Category {
	var out []Category
	for c := CategoryCC; c < numCategories; c++ {
		if tc.tools[c] != nil {
			out = append(out, c)
		}
	}
	return out
}

// Deps returns the labels that must be built before any target of this
// toolchain.
func (tc *Toolchain) Deps() []label.Label {
	return append([]label.Label(nil), tc.deps...)
}

func (tc *Toolchain) SetDeps(deps []label.Label) {
	tc.mustBeMutable("deps")
	tc.deps = append([]label.Label(nil), deps...)
}

func (tc *Toolchain) SetConcurrentLinks(n int) {
	tc.mustBeMutable("concurrent_links")
	tc.concurrentLinks = n
}

func (tc *Toolchain) SetVisibility(v Visibility) {
	tc.mustBeMutable("visibility")
	tc.visibility = v
}

// Args returns a copy of the argument overrides.
func (tc *Toolchain) Args() map[string]cty.Value {
	if tc.args == nil {
		return nil
	}
	return maps.Clone(tc.args)
}

// ArgNames returns the override names in sorted order.
func (tc *Toolchain) ArgNames() []string {
	names := make([]string, 0, len(tc.args))
	for k := range tc.args {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// MergeArgs copies values into the overrides. A later write to the same key
// wins.
func (tc *Toolchain) MergeArgs(values map[string]cty.Value) {
	tc.mustBeMutable("toolchain_args")
	if tc.args == nil {
		tc.args = make(map[string]cty.Value, len(values))
	}
	maps.Copy(tc.args, values)
}

// SetupComplete seals every tool, records the union of their placeholders
// and freezes the toolchain.
func (tc *Toolchain) SetupComplete() {
	if tc.setupComplete {
		return
	}
	for _, t := range tc.tools {
		if t == nil {
			continue
		}
		t.Seal()
		tc.kinds.Merge(t.SubstitutionKinds())
	}
	tc.setupComplete = true
}

// SubstitutionKinds is the union of every tool's placeholders. It is only
// populated after SetupComplete.
func (tc *Toolchain) SubstitutionKinds() substitution.Bits {
	return tc.kinds
}
