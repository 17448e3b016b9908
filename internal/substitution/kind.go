package substitution

import "strings"

// Kind identifies one substitutable {{placeholder}}.
type Kind int

// The order of the kinds is significant: RequiredKinds reports kinds in this
// order, which keeps error messages and rendered output deterministic.
const (
	Literal Kind = iota

	// Common to compiler and copy tools.
	Source
	Output

	// Source-file decompositions.
	SourceNamePart
	SourceFilePart
	SourceDir
	SourceRootRelativeDir
	SourceGenDir
	SourceOutDir

	// Target-level values available to every tool.
	Label
	LabelName
	RootGenDir
	RootOutDir
	TargetGenDir
	TargetOutDir
	TargetOutputName

	// Compiler flags.
	AsmFlags
	CFlags
	CFlagsC
	CFlagsCC
	CFlagsObjC
	CFlagsObjCC
	Defines
	IncludeDirs

	// Linker values.
	LinkerInputs
	LinkerInputsNewline
	LdFlags
	Libs
	OutputExtension
	Solibs

	numKinds
)

// kindNames is the fixed name table used by the parser. The index is the Kind.
var kindNames = [numKinds]string{
	Literal:               "",
	Source:                "source",
	Output:                "output",
	SourceNamePart:        "source_name_part",
	SourceFilePart:        "source_file_part",
	SourceDir:             "source_dir",
	SourceRootRelativeDir: "source_root_relative_dir",
	SourceGenDir:          "source_gen_dir",
	SourceOutDir:          "source_out_dir",
	Label:                 "label",
	LabelName:             "label_name",
	RootGenDir:            "root_gen_dir",
	RootOutDir:            "root_out_dir",
	TargetGenDir:          "target_gen_dir",
	TargetOutDir:          "target_out_dir",
	TargetOutputName:      "target_output_name",
	AsmFlags:              "asmflags",
	CFlags:                "cflags",
	CFlagsC:               "cflags_c",
	CFlagsCC:              "cflags_cc",
	CFlagsObjC:            "cflags_objc",
	CFlagsObjCC:           "cflags_objcc",
	Defines:               "defines",
	IncludeDirs:           "include_dirs",
	LinkerInputs:          "inputs",
	LinkerInputsNewline:   "inputs_newline",
	LdFlags:               "ldflags",
	Libs:                  "libs",
	OutputExtension:       "output_extension",
	Solibs:                "solibs",
}

// Name returns the bare placeholder name, e.g. "source_out_dir".
func (k Kind) Name() string {
	if k < 0 || k >= numKinds {
		return ""
	}
	return kindNames[k]
}

// String returns the placeholder as written in a pattern, e.g. "{{source}}".
func (k Kind) String() string {
	if k == Literal {
		return "<literal>"
	}
	name := k.Name()
	if name == "" {
		return "<invalid>"
	}
	return "{{" + name + "}}"
}

// KindByName looks up a placeholder by its bare name.
func KindByName(name string) (Kind, bool) {
	for k := Source; k < numKinds; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Literal, false
}

// AllKinds returns every placeholder kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, numKinds-1)
	for k := Source; k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Names renders a list of kinds as "{{a}}, {{b}}".
func Names(kinds []Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}

// Bits is a set of placeholder kinds.
type Bits [numKinds]bool

// Add marks every kind in kinds as used.
func (b *Bits) Add(kinds ...Kind) {
	for _, k := range kinds {
		if k > Literal && k < numKinds {
			b[k] = true
		}
	}
}

// Merge adds all kinds set in other.
func (b *Bits) Merge(other Bits) {
	for k := range other {
		if other[k] {
			b[k] = true
		}
	}
}

// Has reports whether k is in the set.
func (b *Bits) Has(k Kind) bool {
	return k > Literal && k < numKinds && b[k]
}

// Kinds returns the set as a sorted slice.
func (b *Bits) Kinds() []Kind {
	var kinds []Kind
	for k := Source; k < numKinds; k++ {
		if b[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
