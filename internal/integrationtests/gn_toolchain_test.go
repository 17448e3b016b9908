package integration_tests

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/loader"
	"github.com/specialistvlad/toolchaingo/internal/substitution"
	"github.com/specialistvlad/toolchaingo/internal/testutil"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const buildConfigHCL = `
default_toolchain = "//build/toolchain:gcc"
is_debug          = true
`

const flagsHCLI = `
cc        = "gcc"
cxx       = "g++"
opt_flags = ["-O0", "-g"]
`

const gccToolchainHCL = `
import "//build/flags.hcli" {}

lib_ext = ".so"

toolchain "gcc" {
  concurrent_links = 4

  tool "cc" {
    depfile     = "{{output}}.d"
    command     = "${cc} -MMD -MF {{output}}.d {{defines}} {{include_dirs}} {{cflags}} {{cflags_c}} ${join(" ", opt_flags)}${is_debug ? " -DDEBUG" : ""} -c {{source}} -o {{output}}"
    depsformat  = "gcc"
    description = "CC {{output}}"
    outputs     = ["{{source_out_dir}}/{{target_output_name}}.{{source_name_part}}.o"]
  }

  tool "cxx" {
    depfile     = "{{output}}.d"
    command     = "${cxx} -MMD -MF {{output}}.d {{defines}} {{include_dirs}} {{cflags}} {{cflags_cc}} -c {{source}} -o {{output}}"
    depsformat  = "gcc"
    description = "CXX {{output}}"
    outputs     = ["{{source_out_dir}}/{{target_output_name}}.{{source_name_part}}.o"]
    precompiled_header_type = "gcc"
  }

  tool "alink" {
    rspfile         = "{{output}}.rsp"
    command         = "rm -f {{output}} && ar rcs {{output}} @{{output}}.rsp"
    description     = "AR {{output}}"
    rspfile_content = "{{inputs}}"
    outputs         = ["{{target_out_dir}}/{{target_output_name}}{{output_extension}}"]
    default_output_extension = ".a"
    output_prefix   = "lib"
  }

  tool "solink" {
    command     = "${cxx} -shared {{ldflags}} -o {{output}} -Wl,-soname={{target_output_name}}${lib_ext} {{inputs}} {{solibs}} {{libs}}"
    description = "SOLINK {{output}}"
    outputs = [
      "{{root_out_dir}}/{{target_output_name}}{{output_extension}}",
      "{{root_out_dir}}/{{target_output_name}}{{output_extension}}.TOC",
    ]
    link_output   = "{{root_out_dir}}/{{target_output_name}}{{output_extension}}"
    depend_output = "{{root_out_dir}}/{{target_output_name}}{{output_extension}}.TOC"
    restat        = true
    lib_switch    = "-l"
    lib_dir_switch = "-L"
    default_output_extension = lib_ext
    output_prefix = "lib"
  }

  tool "link" {
    command     = "${cxx} {{ldflags}} -o {{output}} -Wl,--start-group {{inputs}} {{solibs}} -Wl,--end-group {{libs}}"
    description = "LINK {{output}}"
    outputs     = ["{{root_out_dir}}/{{target_output_name}}"]
    lib_switch     = "-l"
    lib_dir_switch = "-L"
  }

  tool "stamp" {
    command     = "touch {{output}}"
    description = "STAMP {{output}}"
  }

  tool "copy" {
    command     = "ln -f {{source}} {{output}} 2>/dev/null || cp -af {{source}} {{output}}"
    description = "COPY {{source}} {{output}}"
  }

  toolchain_args {
    current_cpu = "x64"
    is_clang    = false
  }
}
`

const hostToolchainHCL = `
toolchain "host" {
  deps = ["//build:bootstrap", ":setup(//build/toolchain:host)"]
  tool "stamp" {
    command = "touch {{output}}"
  }
  toolchain_args {
    current_cpu = "arm64"
  }
  toolchain_args {
    current_os = "linux"
  }
}
`

func gnTree() map[string]string {
	return map[string]string{
		"BUILDCONFIG.hcl":           buildConfigHCL,
		"build/flags.hcli":          flagsHCLI,
		"build/toolchain/BUILD.hcl": gccToolchainHCL,
		"build/toolchain/host.hcl":  hostToolchainHCL,
	}
}

func TestGNStyleToolchains(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := runPass(t, gnTree(), loader.WithBuildConfig("BUILDCONFIG.hcl"), loader.WithWorkers(2))

	// --- Assert ---
	require.NoError(t, result.Err)
	reg := result.Result.Registry
	require.Equal(t, 2, reg.Len())

	gccLabel := label.New("//build/toolchain", "gcc")
	assert.Equal(t, gccLabel, reg.Default())

	gcc, ok := reg.Get(gccLabel)
	require.True(t, ok)
	assert.Equal(t, 4, gcc.ConcurrentLinks())
	assert.Equal(t, []toolchain.Category{
		toolchain.CategoryCC, toolchain.CategoryCXX, toolchain.CategoryAlink,
		toolchain.CategorySolink, toolchain.CategoryLink, toolchain.CategoryStamp, toolchain.CategoryCopy,
	}, gcc.Categories())

	cc := gcc.Tool(toolchain.CategoryCC)
	assert.Equal(t,
		"gcc -MMD -MF {{output}}.d {{defines}} {{include_dirs}} {{cflags}} {{cflags_c}} -O0 -g -DDEBUG -c {{source}} -o {{output}}",
		cc.Command().String())
	assert.Equal(t, toolchain.DepsFormatGCC, cc.DepsFormat())
	assert.Equal(t, toolchain.PCHGCC, gcc.Tool(toolchain.CategoryCXX).PrecompiledHeaderType())

	alink := gcc.Tool(toolchain.CategoryAlink)
	assert.Equal(t, ".a", alink.DefaultOutputExtension())
	assert.Equal(t, "lib", alink.OutputPrefix())
	assert.Equal(t, "{{inputs}}", alink.RspfileContent().String())

	solink := gcc.Tool(toolchain.CategorySolink)
	assert.True(t, solink.Restat())
	assert.Equal(t, ".so", solink.DefaultOutputExtension())
	assert.True(t, solink.Outputs().Contains(solink.LinkOutput()))
	assert.True(t, solink.Outputs().Contains(solink.DependOutput()))
	assert.Equal(t, "-l", solink.LibSwitch())
	assert.Equal(t, "-L", solink.LibDirSwitch())

	kinds := gcc.SubstitutionKinds()
	for _, k := range []substitution.Kind{
		substitution.Source, substitution.Output, substitution.CFlagsC, substitution.CFlagsCC,
		substitution.LinkerInputs, substitution.Solibs, substitution.Libs, substitution.OutputExtension,
	} {
		assert.True(t, kinds.Has(k), "expected %s", k)
	}
	assert.False(t, kinds.Has(substitution.AsmFlags))

	wantArgs := map[string]cty.Value{
		"current_cpu": cty.StringVal("x64"),
		"is_clang":    cty.False,
	}
	if diff := cmp.Diff(wantArgs, gcc.Args(), cmp.Comparer(func(a, b cty.Value) bool { return a.RawEquals(b) })); diff != "" {
		t.Errorf("toolchain_args mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, reg.ArgsFor(gccLabel), "the default toolchain has no overrides")

	hostLabel := label.New("//build/toolchain", "host")
	host, ok := reg.Get(hostLabel)
	require.True(t, ok)
	assert.Equal(t, []string{"current_cpu", "current_os"}, host.ArgNames())
	assert.Equal(t, "arm64", reg.ArgsFor(hostLabel)["current_cpu"].AsString())
	assert.Equal(t, []label.Label{
		label.New("//build", "bootstrap").WithToolchain(gccLabel),
		label.New("//build/toolchain", "setup").WithToolchain(hostLabel),
	}, host.Deps())

	// --- Assert on logs ---
	assert.Contains(t, result.LogOutput, `msg="Evaluated build config."`)
	assert.Regexp(t, `msg="Resolved import\."[^\n]* path=//build/flags\.hcli`, result.LogOutput)
}

func TestGNStyleToolchains_Failures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		replace     map[string]string
		kind        builderr.Kind
		errContains string
	}{
		{
			name:        "link_output missing from outputs",
			replace:     map[string]string{"build/toolchain/extra.hcl": solinkWith(`link_output = "{{root_out_dir}}/other.so"`)},
			kind:        builderr.OutputNotInOutputsList,
			errContains: "link_output",
		},
		{
			name:        "link_output on a compiler",
			replace:     map[string]string{"build/toolchain/extra.hcl": ccWith(`link_output = "{{source_out_dir}}/x.o"`)},
			kind:        builderr.InvalidFieldForCategory,
			errContains: "This tool specifies a link_output.",
		},
		{
			name:        "compiler placeholder in linker",
			replace:     map[string]string{"build/toolchain/extra.hcl": solinkWith(`description = "SOLINK {{cflags}}"`)},
			kind:        builderr.InvalidPlaceholder,
			errContains: "{{cflags}}",
		},
		{
			name:        "bad depsformat",
			replace:     map[string]string{"build/toolchain/extra.hcl": ccWith(`depsformat = "clang"`)},
			kind:        builderr.InvalidEnumValue,
			errContains: "depsformat",
		},
		{
			name:        "misspelt field",
			replace:     map[string]string{"build/toolchain/extra.hcl": ccWith(`descripton = "CC"`)},
			kind:        builderr.UnusedField,
			errContains: "descripton",
		},
		{
			name:        "undefined variable",
			replace:     map[string]string{"build/toolchain/extra.hcl": ccWith(`description = "${nope}"`)},
			kind:        builderr.EvalFailed,
			errContains: "nope",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			files := gnTree()
			for k, v := range tc.replace {
				files[k] = v
			}

			result := runPass(t, files, loader.WithBuildConfig("BUILDCONFIG.hcl"))

			testutil.RequireKind(t, result.Err, tc.kind, tc.errContains)
			assert.Contains(t, result.Err.Error(), "extra.hcl")
			assert.Nil(t, result.Result)
		})
	}
}

func solinkWith(extra string) string {
	return `
toolchain "extra" {
  tool "solink" {
    command = "ld -shared -o {{output}} {{inputs}}"
    outputs = ["{{root_out_dir}}/{{target_output_name}}.so"]
    ` + extra + `
  }
}
`
}

func ccWith(extra string) string {
	return `
toolchain "extra" {
  tool "cc" {
    command = "cc -c {{source}} -o {{output}}"
    outputs = ["{{source_out_dir}}/{{source_name_part}}.o"]
    ` + extra + `
  }
}
`
}
