// internal/label/types.go
package label

import "errors"

// ErrInvalid is wrapped by every resolution failure.
var ErrInvalid = errors.New("invalid label")

// RootDir is the source root.
const RootDir = "//"

// Label identifies a toolchain or target. Dir is source-absolute and never
// has a trailing slash except for the root itself.
type Label struct {
	Dir  string
	Name string

	// Toolchain qualifier. Both are empty for toolchain labels.
	ToolchainDir  string
	ToolchainName string
}

// New returns a label without a toolchain qualifier.
func New(dir, name string) Label {
	return Label{Dir: cleanDir(dir), Name: name}
}

// IsZero reports whether l is the zero Label.
func (l Label) IsZero() bool {
	return l == Label{}
}

// HasToolchain reports whether l is qualified with a toolchain.
func (l Label) HasToolchain() bool {
	return l.ToolchainName != ""
}

// Toolchain returns the qualifying toolchain as a label of its own.
func (l Label) Toolchain() Label {
	return Label{Dir: l.ToolchainDir, Name: l.ToolchainName}
}

// WithToolchain returns l qualified by tc.
func (l Label) WithToolchain(tc Label) Label {
	l.ToolchainDir = tc.Dir
	l.ToolchainName = tc.Name
	return l
}

// WithoutToolchain returns l with its qualifier removed.
func (l Label) WithoutToolchain() Label {
	l.ToolchainDir = ""
	l.ToolchainName = ""
	return l
}
