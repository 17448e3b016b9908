// Package scope holds the bindings produced while evaluating declaration
// blocks. A Scope tracks which bindings were read so that assignments with no
// effect can be reported, and chains to its containing scope for lookups.
package scope

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
	"github.com/zclconf/go-cty/cty"
)

// Flags mark privileged evaluation contexts. They are inherited by child
// scopes.
type Flags uint8

const (
	ProcessingImport Flags = 1 << iota
	ProcessingBuildConfig
)

// ItemCollector receives toolchains once they are complete.
type ItemCollector interface {
	Insert(tc *toolchain.Toolchain) error
}

// Value is a binding together with where it was assigned.
type Value struct {
	Value cty.Value
	Range hcl.Range
}

type binding struct {
	Value
	used bool
	seq  int
}

// Scope is one level of bindings.
type Scope struct {
	parent    *Scope
	values    map[string]*binding
	seq       int
	flags     Flags
	sourceDir string
	collector ItemCollector
}

// New returns a root scope for files in sourceDir.
func New(sourceDir string) *Scope {
	return &Scope{values: make(map[string]*binding), sourceDir: sourceDir}
}

// NewChild returns an empty scope nested in s.
func (s *Scope) NewChild() *Scope {
	return &Scope{parent: s, values: make(map[string]*binding)}
}

// Parent returns the containing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// SetFlags adds f to this scope's own flags.
func (s *Scope) SetFlags(f Flags) {
	s.flags |= f
}

func (s *Scope) hasFlag(f Flags) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.flags&f != 0 {
			return true
		}
	}
	return false
}

// IsProcessingImport reports whether s or a containing scope is evaluating an
// imported file.
func (s *Scope) IsProcessingImport() bool {
	return s.hasFlag(ProcessingImport)
}

// IsProcessingBuildConfig reports whether s or a containing scope is
// evaluating the build config file.
func (s *Scope) IsProcessingBuildConfig() bool {
	return s.hasFlag(ProcessingBuildConfig)
}

// SourceDir returns the source-absolute directory of the file being
// evaluated, inherited from the nearest scope that sets one.
func (s *Scope) SourceDir() string {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.sourceDir != "" {
			return cur.sourceDir
		}
	}
	return ""
}

// SetItemCollector sets where completed toolchains are sent.
func (s *Scope) SetItemCollector(c ItemCollector) {
	s.collector = c
}

// ItemCollector returns the nearest collector in the chain, or nil.
func (s *Scope) ItemCollector() ItemCollector {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.collector != nil {
			return cur.collector
		}
	}
	return nil
}

// Set assigns name in this scope. A reassignment keeps the original position
// for unused-binding reporting and resets the used mark.
func (s *Scope) Set(name string, v cty.Value, rng hcl.Range) {
	if b, ok := s.values[name]; ok {
		b.Value = Value{Value: v, Range: rng}
		b.used = false
		return
	}
	s.seq++
	s.values[name] = &binding{Value: Value{Value: v, Range: rng}, seq: s.seq}
}

// GetValue looks name up in s and then its containing scopes. When markUsed is
// set the binding is marked as read in the scope that holds it.
func (s *Scope) GetValue(name string, markUsed bool) (*Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.values[name]; ok {
			if markUsed {
				b.used = true
			}
			v := b.Value
			return &v, true
		}
	}
	return nil, false
}

// GetLocal looks name up in s only and does not mark it used.
func (s *Scope) GetLocal(name string) (*Value, bool) {
	b, ok := s.values[name]
	if !ok {
		return nil, false
	}
	v := b.Value
	return &v, true
}

// MarkUsed marks name as read wherever it is bound in the chain.
func (s *Scope) MarkUsed(name string) {
	s.GetValue(name, true)
}

// MarkAllUsed marks every binding in s as read.
func (s *Scope) MarkAllUsed() {
	for _, b := range s.values {
		b.used = true
	}
}

// Names returns this scope's own binding names in assignment order.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.values))
	for n := range s.values {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return s.values[names[i]].seq < s.values[names[j]].seq
	})
	return names
}

// Values returns a copy of this scope's own bindings.
func (s *Scope) Values() map[string]cty.Value {
	out := make(map[string]cty.Value, len(s.values))
	for n, b := range s.values {
		out[n] = b.Value.Value
	}
	return out
}

// CheckUnused reports the first binding of s, in assignment order, that was
// never read.
func (s *Scope) CheckUnused() error {
	for _, n := range s.Names() {
		b := s.values[n]
		if b.used {
			continue
		}
		rng := b.Range
		return builderr.New(builderr.UnusedField, "Assignment had no effect.").
			WithDetail("You set the variable %q here and it was unused before it went out of scope.", n).
			WithField(n).
			At(&rng)
	}
	return nil
}
