package describe

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatHCL:
		return f, nil
	}
	return "", fmt.Errorf("invalid output format %q: must be 'yaml' or 'hcl'", s)
}

// Write encodes doc to w.
func Write(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatHCL:
		_, err := w.Write(hclFile(doc).Bytes())
		return err
	}
	return fmt.Errorf("invalid output format %q", format)
}

func hclFile(doc *Document) *hclwrite.File {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	if doc.DefaultToolchain != "" {
		body.SetAttributeValue("default_toolchain", cty.StringVal(doc.DefaultToolchain))
		body.AppendNewline()
	}

	for i, tc := range doc.Toolchains {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("toolchain", []string{tc.Label}).Body()
		if tc.ConcurrentLinks != 0 {
			block.SetAttributeValue("concurrent_links", cty.NumberIntVal(int64(tc.ConcurrentLinks)))
		}
		if len(tc.Deps) > 0 {
			block.SetAttributeValue("deps", stringList(tc.Deps))
		}
		for _, t := range tc.Tools {
			writeTool(block.AppendNewBlock("tool", []string{t.Name}).Body(), t)
		}
		if tc.source != nil && len(tc.argOrder) > 0 {
			args := block.AppendNewBlock("toolchain_args", nil).Body()
			values := tc.source.Args()
			for _, name := range tc.argOrder {
				args.SetAttributeValue(name, values[name])
			}
		}
	}
	return f
}

func writeTool(body *hclwrite.Body, t Tool) {
	str := func(name, v string) {
		if v != "" {
			body.SetAttributeValue(name, cty.StringVal(v))
		}
	}
	str("command", t.Command)
	str("default_output_extension", t.DefaultOutputExtension)
	str("depfile", t.Depfile)
	str("depsformat", t.DepsFormat)
	str("description", t.Description)
	str("lib_switch", t.LibSwitch)
	str("lib_dir_switch", t.LibDirSwitch)
	str("link_output", t.LinkOutput)
	str("depend_output", t.DependOutput)
	str("runtime_link_output", t.RuntimeLinkOutput)
	str("output_prefix", t.OutputPrefix)
	str("precompiled_header_type", t.PrecompiledHeaderType)
	if t.Restat {
		body.SetAttributeValue("restat", cty.True)
	}
	str("rspfile", t.Rspfile)
	str("rspfile_content", t.RspfileContent)
	if len(t.Outputs) > 0 {
		body.SetAttributeValue("outputs", stringList(t.Outputs))
	}
}

func stringList(ss []string) cty.Value {
	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
