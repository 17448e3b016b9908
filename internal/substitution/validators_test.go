package substitution

import (
	"errors"
	"testing"

	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		validator Validator
		valid     []Kind
		invalid   []Kind
	}{
		{
			name:      "tool",
			validator: IsValidToolSubstitution,
			valid:     []Kind{Output, Label, LabelName, RootGenDir, RootOutDir, TargetGenDir, TargetOutDir, TargetOutputName},
			invalid:   []Kind{Source, CFlags, LdFlags, OutputExtension},
		},
		{
			name:      "compiler",
			validator: IsValidCompilerSubstitution,
			valid:     []Kind{Source, Output, SourceNamePart, CFlagsCC, Defines, IncludeDirs, AsmFlags},
			invalid:   []Kind{LdFlags, Libs, LinkerInputs, Solibs, OutputExtension},
		},
		{
			name:      "compiler outputs",
			validator: IsValidCompilerOutputsSubstitution,
			valid:     []Kind{Source, SourceOutDir, SourceNamePart, TargetOutputName, RootOutDir},
			invalid:   []Kind{Output, CFlags, Defines},
		},
		{
			name:      "linker",
			validator: IsValidLinkerSubstitution,
			valid:     []Kind{Output, LinkerInputs, LinkerInputsNewline, LdFlags, Libs, OutputExtension, Solibs},
			invalid:   []Kind{Source, CFlags, SourceOutDir},
		},
		{
			name:      "linker outputs",
			validator: IsValidLinkerOutputsSubstitution,
			valid:     []Kind{RootOutDir, TargetOutputName, OutputExtension, SourceDir},
			invalid:   []Kind{Output, LdFlags, LinkerInputs},
		},
		{
			name:      "copy",
			validator: IsValidCopySubstitution,
			valid:     []Kind{Source, Output, TargetOutDir},
			invalid:   []Kind{SourceNamePart, LinkerInputs, CFlags},
		},
		{
			name:      "compile assets",
			validator: IsValidCompileAssetsSubstitution,
			valid:     []Kind{LinkerInputs, Output, Label},
			invalid:   []Kind{Source, LinkerInputsNewline, Libs},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			for _, k := range tc.valid {
				assert.True(t, tc.validator(k), "%s should be valid", k)
			}
			for _, k := range tc.invalid {
				assert.False(t, tc.validator(k), "%s should be invalid", k)
			}
			assert.False(t, tc.validator(Literal))
		})
	}
}

func TestValidateList(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateList([]Kind{Source, Output}, IsValidCompilerSubstitution, "command"))
	require.NoError(t, ValidateList(nil, IsValidToolSubstitution, "command"))

	err := ValidateList([]Kind{Source, LdFlags, Libs}, IsValidCompilerSubstitution, "command")
	require.Error(t, err)
	assert.True(t, errors.Is(err, builderr.InvalidPlaceholder))

	var be *builderr.Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "command", be.Field)
	assert.Contains(t, be.Detail, "{{ldflags}}")
	assert.NotContains(t, be.Detail, "{{libs}}")
}
