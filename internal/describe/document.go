package describe

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/registry"
	"github.com/specialistvlad/toolchaingo/internal/substitution"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
)

// ErrUnknownToolchain is returned when a requested label is not registered.
var ErrUnknownToolchain = errors.New("unknown toolchain")

// Document is the rendered form of a registry.
type Document struct {
	DefaultToolchain string      `yaml:"default_toolchain,omitempty"`
	Toolchains       []Toolchain `yaml:"toolchains"`
}

// Toolchain describes one registered toolchain.
type Toolchain struct {
	Label           string         `yaml:"label"`
	DefinedFrom     string         `yaml:"defined_from,omitempty"`
	ConcurrentLinks int            `yaml:"concurrent_links,omitempty"`
	Deps            []string       `yaml:"deps,omitempty"`
	Args            map[string]any `yaml:"toolchain_args,omitempty"`
	Substitutions   []string       `yaml:"substitutions,omitempty"`
	Tools           []Tool         `yaml:"tools"`

	argOrder []string
	source   *toolchain.Toolchain
}

// Tool describes one tool. Unset fields are omitted.
type Tool struct {
	Name                   string   `yaml:"name"`
	Command                string   `yaml:"command,omitempty"`
	DefaultOutputExtension string   `yaml:"default_output_extension,omitempty"`
	Depfile                string   `yaml:"depfile,omitempty"`
	DepsFormat             string   `yaml:"depsformat,omitempty"`
	Description            string   `yaml:"description,omitempty"`
	LibSwitch              string   `yaml:"lib_switch,omitempty"`
	LibDirSwitch           string   `yaml:"lib_dir_switch,omitempty"`
	LinkOutput             string   `yaml:"link_output,omitempty"`
	DependOutput           string   `yaml:"depend_output,omitempty"`
	RuntimeLinkOutput      string   `yaml:"runtime_link_output,omitempty"`
	OutputPrefix           string   `yaml:"output_prefix,omitempty"`
	PrecompiledHeaderType  string   `yaml:"precompiled_header_type,omitempty"`
	Restat                 bool     `yaml:"restat,omitempty"`
	Rspfile                string   `yaml:"rspfile,omitempty"`
	RspfileContent         string   `yaml:"rspfile_content,omitempty"`
	Outputs                []string `yaml:"outputs,omitempty"`
}

// Build collects the toolchains of reg, sorted by label. When only is
// non-empty just those toolchains are included, in the order given.
func Build(reg *registry.Registry, only ...label.Label) (*Document, error) {
	var tcs []*toolchain.Toolchain
	if len(only) == 0 {
		tcs = reg.All()
	}
	for _, l := range only {
		tc, ok := reg.Get(l)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownToolchain, l)
		}
		tcs = append(tcs, tc)
	}

	doc := &Document{Toolchains: make([]Toolchain, 0, len(tcs))}
	if def := reg.Default(); !def.IsZero() {
		doc.DefaultToolchain = def.String()
	}
	for _, tc := range tcs {
		d, err := describeToolchain(tc)
		if err != nil {
			return nil, err
		}
		doc.Toolchains = append(doc.Toolchains, d)
	}
	return doc, nil
}

func describeToolchain(tc *toolchain.Toolchain) (Toolchain, error) {
	d := Toolchain{
		Label:           tc.Label().String(),
		ConcurrentLinks: tc.ConcurrentLinks(),
		argOrder:        tc.ArgNames(),
		source:          tc,
	}
	if rng := tc.DefinedFrom(); rng.Filename != "" {
		d.DefinedFrom = rng.String()
	}
	for _, dep := range tc.Deps() {
		d.Deps = append(d.Deps, dep.String())
	}

	args := tc.Args()
	if len(args) > 0 {
		d.Args = make(map[string]any, len(args))
		for name, v := range args {
			native, err := ctyToNative(v)
			if err != nil {
				return Toolchain{}, fmt.Errorf("toolchain %s: toolchain_args.%s: %w", tc.Label(), name, err)
			}
			d.Args[name] = native
		}
	}

	kinds := tc.SubstitutionKinds()
	for _, k := range kinds.Kinds() {
		d.Substitutions = append(d.Substitutions, k.Name())
	}

	d.Tools = make([]Tool, 0, len(tc.Categories()))
	for _, c := range tc.Categories() {
		d.Tools = append(d.Tools, describeTool(tc.Tool(c)))
	}
	return d, nil
}

func describeTool(t *toolchain.Tool) Tool {
	d := Tool{
		Name:                   t.Category().String(),
		Command:                t.Command().String(),
		DefaultOutputExtension: t.DefaultOutputExtension(),
		Depfile:                t.Depfile().String(),
		Description:            t.Description().String(),
		LibSwitch:              t.LibSwitch(),
		LibDirSwitch:           t.LibDirSwitch(),
		LinkOutput:             t.LinkOutput().String(),
		DependOutput:           t.DependOutput().String(),
		RuntimeLinkOutput:      t.RuntimeLinkOutput().String(),
		OutputPrefix:           t.OutputPrefix(),
		Restat:                 t.Restat(),
		Rspfile:                t.Rspfile().String(),
		RspfileContent:         t.RspfileContent().String(),
		Outputs:                outputs(t.Outputs()),
	}
	if f := t.DepsFormat(); f != toolchain.DepsFormatNone {
		d.DepsFormat = f.String()
	}
	if p := t.PrecompiledHeaderType(); p != toolchain.PCHNone {
		d.PrecompiledHeaderType = p.String()
	}
	return d
}

func outputs(l substitution.List) []string {
	if l.Len() == 0 {
		return nil
	}
	return l.Strings()
}
