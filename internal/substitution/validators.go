package substitution

import "github.com/specialistvlad/toolchaingo/internal/builderr"

// Validator decides whether a placeholder may appear in a given field.
type Validator func(Kind) bool

// IsValidToolSubstitution accepts the target-level placeholders every tool
// understands.
func IsValidToolSubstitution(k Kind) bool {
	switch k {
	case Output, Label, LabelName, RootGenDir, RootOutDir,
		TargetGenDir, TargetOutDir, TargetOutputName:
		return true
	}
	return false
}

// IsValidSourceSubstitution accepts the placeholders derived from a single
// source file.
func IsValidSourceSubstitution(k Kind) bool {
	switch k {
	case Source, SourceNamePart, SourceFilePart, SourceDir,
		SourceRootRelativeDir, SourceGenDir, SourceOutDir:
		return true
	}
	return false
}

func IsValidCompilerSubstitution(k Kind) bool {
	if IsValidToolSubstitution(k) || IsValidSourceSubstitution(k) {
		return true
	}
	switch k {
	case AsmFlags, CFlags, CFlagsC, CFlagsCC, CFlagsObjC, CFlagsObjCC,
		Defines, IncludeDirs:
		return true
	}
	return false
}

// IsValidCompilerOutputsSubstitution rejects {{output}} to avoid a
// self-referencing output.
func IsValidCompilerOutputsSubstitution(k Kind) bool {
	return (IsValidToolSubstitution(k) && k != Output) || IsValidSourceSubstitution(k)
}

func IsValidLinkerSubstitution(k Kind) bool {
	if IsValidToolSubstitution(k) {
		return true
	}
	switch k {
	case LinkerInputs, LinkerInputsNewline, LdFlags, Libs, OutputExtension, Solibs:
		return true
	}
	return false
}

func IsValidLinkerOutputsSubstitution(k Kind) bool {
	return IsValidCompilerOutputsSubstitution(k) || k == OutputExtension
}

func IsValidCopySubstitution(k Kind) bool {
	return IsValidToolSubstitution(k) || k == Source
}

func IsValidCompileAssetsSubstitution(k Kind) bool {
	return IsValidToolSubstitution(k) || k == LinkerInputs
}

// ValidateList returns an InvalidPlaceholder error for the first kind that
// validator rejects. field names the declaration field for the message.
func ValidateList(kinds []Kind, validator Validator, field string) error {
	for _, k := range kinds {
		if !validator(k) {
			return builderr.New(builderr.InvalidPlaceholder, "Pattern not valid here.").
				WithDetail("You used the pattern %s which is not valid\nfor this variable.", k).
				WithField(field)
		}
	}
	return nil
}
