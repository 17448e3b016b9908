package loader

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/toolchaingo/internal/ctxlog"
	"github.com/specialistvlad/toolchaingo/internal/label"
)

// importer resolves import blocks against the pass root. Parsed files are
// cached per pass; concurrent imports of the same file parse it once.
type importer struct {
	rootDir string
	files   sync.Map // Key: absolute path, Value: *importEntry
}

type importEntry struct {
	once sync.Once
	body *hclsyntax.Body
	err  error
}

func newImporter(rootDir string) *importer {
	return &importer{rootDir: rootDir}
}

// Import implements builder.Importer. p is source-absolute ("//x/y.hcli")
// or relative to fromDir.
func (i *importer) Import(ctx context.Context, fromDir, p string) (*hclsyntax.Body, string, error) {
	rel, err := resolveImportPath(fromDir, p)
	if err != nil {
		return nil, "", err
	}
	abs := filepath.Join(i.rootDir, filepath.FromSlash(rel))

	v, loaded := i.files.LoadOrStore(abs, &importEntry{})
	entry := v.(*importEntry)
	entry.once.Do(func() {
		entry.body, entry.err = parseFile(abs)
	})
	if entry.err != nil {
		return nil, "", entry.err
	}

	dir := label.RootDir
	if d := path.Dir(rel); d != "." {
		dir += d
	}
	ctxlog.FromContext(ctx).Debug("Resolved import.", "path", label.RootDir+rel, "cached", loaded)
	return entry.body, dir, nil
}

// resolveImportPath returns p relative to the source root, without the
// leading "//".
func resolveImportPath(fromDir, p string) (string, error) {
	if p == "" {
		return "", errors.New("import path is empty")
	}
	var rel string
	switch {
	case strings.HasPrefix(p, label.RootDir):
		rel = p[len(label.RootDir):]
	case strings.HasPrefix(p, "/"):
		return "", fmt.Errorf("import path %q must be source-absolute (//) or relative", p)
	default:
		rel = path.Join(strings.TrimPrefix(fromDir, label.RootDir), p)
	}
	rel = path.Clean(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("import path %q is outside of the source root", p)
	}
	return rel, nil
}
