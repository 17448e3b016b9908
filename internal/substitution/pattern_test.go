package substitution

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		raw          string
		wantSegments []Segment
		wantKinds    []Kind
		errContains  string
	}{
		{
			name:         "literal only",
			raw:          "gcc -c",
			wantSegments: []Segment{{Kind: Literal, Literal: "gcc -c"}},
		},
		{
			name: "empty",
			raw:  "",
		},
		{
			name: "placeholders with literals",
			raw:  "gcc {{source}} -o {{output}}",
			wantSegments: []Segment{
				{Kind: Literal, Literal: "gcc "},
				{Kind: Source},
				{Kind: Literal, Literal: " -o "},
				{Kind: Output},
			},
			wantKinds: []Kind{Source, Output},
		},
		{
			name: "adjacent placeholders",
			raw:  "{{source_out_dir}}/{{source_name_part}}.o",
			wantSegments: []Segment{
				{Kind: SourceOutDir},
				{Kind: Literal, Literal: "/"},
				{Kind: SourceNamePart},
				{Kind: Literal, Literal: ".o"},
			},
			wantKinds: []Kind{SourceNamePart, SourceOutDir},
		},
		{
			name:         "single braces stay literal",
			raw:          "echo {not_a_placeholder}",
			wantSegments: []Segment{{Kind: Literal, Literal: "echo {not_a_placeholder}"}},
		},
		{
			name:        "unknown name",
			raw:         "gcc {{sauce}}",
			errContains: "offset 4",
		},
		{
			name:        "unterminated",
			raw:         "gcc {{source",
			errContains: "offset 4",
		},
		{
			name:        "second marker unknown",
			raw:         "{{source}} {{bogus}}",
			errContains: "offset 11",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p, err := Parse(tc.raw)
			if tc.errContains != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, builderr.UnknownPlaceholder))
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.wantSegments, p.Segments()); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.wantKinds, p.RequiredKinds())
			assert.Equal(t, tc.raw, p.String())
		})
	}
}

func TestPattern_RequiredKindsDeduplicated(t *testing.T) {
	t.Parallel()

	orders := []string{
		"{{cflags}} {{source}} {{defines}} {{source}} {{output}} {{cflags}}",
		"{{output}} {{defines}} {{cflags}} {{source}}",
		"{{defines}}{{defines}}{{source}}{{cflags}}{{output}}{{output}}",
	}
	want := []Kind{Source, Output, CFlags, Defines}
	for _, raw := range orders {
		p, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, want, p.RequiredKinds(), raw)
	}
}

func TestPattern_Equal(t *testing.T) {
	t.Parallel()

	a := MustParse("{{root_out_dir}}/{{target_output_name}}.so")
	b := MustParse("{{root_out_dir}}/{{target_output_name}}.so")
	c := MustParse("{{root_out_dir}}/{{target_output_name}}.TOC")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, Pattern{}.Equal(MustParse("")))
	assert.True(t, MustParse("").Empty())
	assert.False(t, a.Empty())
}

func TestParseList(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		_, err := ParseList(nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, builderr.EmptyList))
	})

	t.Run("valid input keeps length and order", func(t *testing.T) {
		t.Parallel()
		raw := []string{"{{root_out_dir}}/lib.so", "{{root_out_dir}}/lib.so.TOC", "{{target_gen_dir}}/x"}
		l, err := ParseList(raw)
		require.NoError(t, err)
		assert.Equal(t, len(raw), l.Len())
		assert.Equal(t, raw, l.Strings())
		assert.Equal(t, []Kind{RootOutDir, TargetGenDir}, l.RequiredKinds())
		assert.True(t, l.Contains(MustParse("{{root_out_dir}}/lib.so.TOC")))
		assert.False(t, l.Contains(MustParse("{{root_out_dir}}/lib.a")))
	})

	t.Run("fails fast on bad element", func(t *testing.T) {
		t.Parallel()
		_, err := ParseList([]string{"ok", "{{nope}}", "{{also_bad}}"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, builderr.UnknownPlaceholder))
		assert.Contains(t, err.Error(), "list element 1")
	})
}

func TestKindByName(t *testing.T) {
	t.Parallel()

	for _, k := range AllKinds() {
		got, ok := KindByName(k.Name())
		require.True(t, ok, k.Name())
		assert.Equal(t, k, got)
	}
	_, ok := KindByName("")
	assert.False(t, ok)
	_, ok = KindByName("sources")
	assert.False(t, ok)
}
