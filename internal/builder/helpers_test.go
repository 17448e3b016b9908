package builder

import (
	"context"
	"fmt"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/scope"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
	"github.com/stretchr/testify/require"
)

// collector records inserted toolchains.
type collector struct {
	got []*toolchain.Toolchain
	err error
}

func (c *collector) Insert(tc *toolchain.Toolchain) error {
	if c.err != nil {
		return c.err
	}
	c.got = append(c.got, tc)
	return nil
}

// recordingObserver keeps a flat log of observer events.
type recordingObserver struct {
	events []string
}

func (o *recordingObserver) ToolchainStarted(ctx context.Context, l label.Label) context.Context {
	o.events = append(o.events, "start "+l.String())
	return ctx
}

func (o *recordingObserver) ToolDefined(_ context.Context, l label.Label, tool *toolchain.Tool) {
	o.events = append(o.events, fmt.Sprintf("tool %s %s", l, tool.Category()))
}

func (o *recordingObserver) ToolchainFinished(_ context.Context, l label.Label, tc *toolchain.Toolchain, err error) {
	o.events = append(o.events, fmt.Sprintf("finish %s ok=%t", l, err == nil && tc != nil))
}

// fakeImporter serves import bodies from memory.
type fakeImporter struct {
	files map[string]string
}

func (f *fakeImporter) Import(_ context.Context, _ string, path string) (*hclsyntax.Body, string, error) {
	src, ok := f.files[path]
	if !ok {
		return nil, "", fmt.Errorf("no such file %q", path)
	}
	body, diags := parseBody(path, src)
	if diags.HasErrors() {
		return nil, "", diags
	}
	return body, "//imports", nil
}

func parseBody(filename, src string) (*hclsyntax.Body, hcl.Diagnostics) {
	file, diags := hclsyntax.ParseConfig([]byte(src), filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	return file.Body.(*hclsyntax.Body), nil
}

type evalResult struct {
	toolchains []*toolchain.Toolchain
	root       *scope.Scope
	err        error
}

// evalSource parses src and executes it in a fresh root scope for //build.
func evalSource(t *testing.T, src string, opts ...Option) evalResult {
	t.Helper()
	body, diags := parseBody("BUILD.hcl", src)
	require.False(t, diags.HasErrors(), diags.Error())

	c := &collector{}
	root := scope.New("//build")
	root.SetItemCollector(c)
	err := New(opts...).Exec(context.Background(), root, body)
	return evalResult{toolchains: c.got, root: root, err: err}
}

// toolSource wraps a tool body in a minimal toolchain.
func toolSource(category, body string) string {
	return fmt.Sprintf("toolchain \"tc\" {\n  tool %q {\n%s\n  }\n}\n", category, body)
}

// onlyTool returns the single tool of the single toolchain in r.
func onlyTool(t *testing.T, r evalResult, c toolchain.Category) *toolchain.Tool {
	t.Helper()
	require.NoError(t, r.err)
	require.Len(t, r.toolchains, 1)
	tool := r.toolchains[0].Tool(c)
	require.NotNil(t, tool)
	return tool
}
