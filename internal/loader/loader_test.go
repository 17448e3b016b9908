package loader

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/observe"
	"github.com/specialistvlad/toolchaingo/internal/registry"
	"github.com/specialistvlad/toolchaingo/internal/testutil"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const gccToolchain = `
toolchain "gcc" {
  tool "stamp" {
    command = "touch {{output}}"
  }
  tool "cc" {
    command = "${cc} {{cflags}} -c {{source}} -o {{output}}"
    outputs = ["{{source_out_dir}}/{{source_name_part}}.o"]
  }
}
`

func mustGet(t *testing.T, reg *registry.Registry, dir, name string) *toolchain.Toolchain {
	t.Helper()
	tc, ok := reg.Get(label.New(dir, name))
	require.True(t, ok, "toolchain %s:%s not registered", dir, name)
	return tc
}

func TestLoad_Tree(t *testing.T) {
	t.Parallel()

	root := testutil.WriteTree(t, map[string]string{
		"toolchains/BUILD.hcl": "cc = \"gcc\"\n" + gccToolchain,
		"sub/dir/clang.hcl": `
toolchain "clang" {
  concurrent_links = 4
  tool "copy" {
    command = "cp {{source}} {{output}}"
  }
}
`,
		"README.md": "not a declaration",
	})

	for _, workers := range []int{1, 4} {
		res, err := New(WithWorkers(workers)).Load(context.Background(), root)
		require.NoError(t, err)

		assert.Len(t, res.Files, 2)
		_, err = uuid.Parse(res.PassID)
		assert.NoError(t, err)
		require.Equal(t, 2, res.Registry.Len())

		gcc := mustGet(t, res.Registry, "//toolchains", "gcc")
		assert.Equal(t, "gcc {{cflags}} -c {{source}} -o {{output}}", gcc.Tool(toolchain.CategoryCC).Command().String())
		assert.Equal(t, 4, mustGet(t, res.Registry, "//sub/dir", "clang").ConcurrentLinks())
	}
}

func TestLoad_SingleFile(t *testing.T) {
	t.Parallel()

	root := testutil.WriteTree(t, map[string]string{
		"tc/gcc.hcl":   "cc = \"gcc\"\n" + gccToolchain,
		"tc/other.hcl": "this is { not hcl",
	})

	res, err := New().Load(context.Background(), filepath.Join(root, "tc", "gcc.hcl"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Registry.Len())
	mustGet(t, res.Registry, "//", "gcc")
}

func TestLoad_BuildConfig(t *testing.T) {
	t.Parallel()

	root := testutil.WriteTree(t, map[string]string{
		"BUILDCONFIG.hcl": `
cc                = "clang"
default_toolchain = "//toolchains:gcc"
`,
		"toolchains/BUILD.hcl": gccToolchain,
		"toolchains/host.hcl": `
toolchain "host" {
  deps = ["//build:bootstrap", "//build:other(:host)"]
  tool "stamp" {
    command = "touch {{output}}"
  }
}
`,
	})

	res, err := New(WithBuildConfig("BUILDCONFIG.hcl")).Load(context.Background(), root)
	require.NoError(t, err)

	assert.Len(t, res.Files, 2)
	gccLabel := label.New("//toolchains", "gcc")
	assert.Equal(t, gccLabel, res.Registry.Default())

	gcc := mustGet(t, res.Registry, "//toolchains", "gcc")
	assert.Equal(t, "clang {{cflags}} -c {{source}} -o {{output}}", gcc.Tool(toolchain.CategoryCC).Command().String())

	deps := mustGet(t, res.Registry, "//toolchains", "host").Deps()
	require.Len(t, deps, 2)
	assert.Equal(t, gccLabel, deps[0].Toolchain())
	assert.Equal(t, label.New("//toolchains", "host"), deps[1].Toolchain())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		files       map[string]string
		buildConfig string
		kind        builderr.Kind
		is          error
		errContains string
	}{
		{
			name:        "toolchain in build config",
			files:       map[string]string{"BUILDCONFIG.hcl": gccToolchain},
			buildConfig: "BUILDCONFIG.hcl",
			kind:        builderr.SyntaxCannotOccurHere,
			errContains: "build config",
		},
		{
			name:        "default toolchain not a string",
			files:       map[string]string{"BUILDCONFIG.hcl": "default_toolchain = 3\n"},
			buildConfig: "BUILDCONFIG.hcl",
			kind:        builderr.TypeMismatch,
			errContains: "default_toolchain",
		},
		{
			name:        "default toolchain with toolchain qualifier",
			files:       map[string]string{"BUILDCONFIG.hcl": "default_toolchain = \"//a:b(//c:d)\"\n"},
			buildConfig: "BUILDCONFIG.hcl",
			kind:        builderr.EvalFailed,
			is:          label.ErrInvalid,
		},
		{
			name:        "default toolchain never defined",
			files:       map[string]string{"BUILDCONFIG.hcl": "default_toolchain = \"//nope:x\"\n"},
			buildConfig: "BUILDCONFIG.hcl",
			errContains: "default toolchain //nope:x is not defined",
		},
		{
			name:        "syntax error",
			files:       map[string]string{"BUILD.hcl": "toolchain \"x\" {\n"},
			kind:        builderr.EvalFailed,
			errContains: "failed to parse",
		},
		{
			name:        "unused file binding",
			files:       map[string]string{"BUILD.hcl": "unused = 1\n"},
			kind:        builderr.UnusedField,
			errContains: "Assignment had no effect.",
		},
		{
			name: "duplicate toolchain across files",
			files: map[string]string{
				"a.hcl": "toolchain \"x\" {}\n",
				"b.hcl": "toolchain \"x\" {}\n",
			},
			is: registry.ErrDuplicateToolchain,
		},
		{
			name: "unknown dependency toolchain",
			files: map[string]string{
				"BUILD.hcl": "toolchain \"x\" {\n  deps = [\"//a:b(//missing:tc)\"]\n}\n",
			},
			errContains: "refers to undefined toolchain //missing:tc",
		},
		{
			name: "tool error surfaces",
			files: map[string]string{
				"BUILD.hcl": "toolchain \"x\" {\n  tool \"cc\" {\n    command = \"cc\"\n  }\n}\n",
			},
			kind:        builderr.MissingRequiredField,
			errContains: "BUILD.hcl:2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			root := testutil.WriteTree(t, tc.files)

			res, err := New(WithBuildConfig(tc.buildConfig)).Load(context.Background(), root)
			require.Error(t, err)
			assert.Nil(t, res)
			if tc.kind != 0 {
				testutil.RequireKind(t, err, tc.kind)
			}
			if tc.is != nil {
				assert.True(t, errors.Is(err, tc.is), "got %v", err)
			}
			if tc.errContains != "" {
				assert.Contains(t, err.Error(), tc.errContains)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat")
}

func TestLoad_Tracing(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	root := testutil.WriteTree(t, map[string]string{
		"a.hcl": "toolchain \"a\" {}\n",
		"b.hcl": "toolchain \"b\" {}\n",
	})
	res, err := New(WithTracer(tp.Tracer("test"))).Load(context.Background(), root)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	for _, s := range spans {
		assert.Equal(t, observe.SpanDefineToolchain, s.Name())
		assert.Contains(t, s.Attributes(), attribute.String(observe.AttrPassID, res.PassID))
	}
}

func TestLoad_LogsPassID(t *testing.T) {
	t.Parallel()

	ctx, logs := testutil.LogContext(t)
	root := testutil.WriteTree(t, map[string]string{"a.hcl": "toolchain \"a\" {}\n"})

	res, err := New(WithVerbose(true)).Load(ctx, root)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "pass_id="+res.PassID)
	assert.Contains(t, logs.String(), `msg="Defining toolchain"`)
	assert.Contains(t, logs.String(), `msg="Configuration pass finished."`)
}

func TestLoad_LogsEachDefinitionOnce(t *testing.T) {
	t.Parallel()

	ctx, logs := testutil.LogContext(t)
	root := testutil.WriteTree(t, map[string]string{
		"BUILD.hcl": "toolchain \"tc\" {\n  tool \"stamp\" {\n    command = \"touch {{output}}\"\n  }\n}\n",
	})

	_, err := New().Load(ctx, root)
	require.NoError(t, err)

	out := logs.String()
	assert.Equal(t, 1, strings.Count(out, `msg="Defining toolchain"`), out)
	assert.Equal(t, 1, strings.Count(out, `msg="Defining tool"`), out)
	assert.Equal(t, 1, strings.Count(out, `msg="Defined toolchain"`), out)
}
