package integration_tests

import (
	"testing"

	"github.com/specialistvlad/toolchaingo/internal/loader"
	"github.com/specialistvlad/toolchaingo/internal/testutil"
)

// HarnessResult holds the outcome of one configuration pass.
type HarnessResult struct {
	LogOutput string
	Err       error
	Result    *loader.Result
}

// runPass writes files into a temp dir and runs a configuration pass over it.
func runPass(t *testing.T, files map[string]string, opts ...loader.Option) *HarnessResult {
	t.Helper()

	root := testutil.WriteTree(t, files)
	ctx, logs := testutil.LogContext(t)

	res, err := loader.New(opts...).Load(ctx, root)
	return &HarnessResult{LogOutput: logs.String(), Err: err, Result: res}
}
