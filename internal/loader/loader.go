package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/toolchaingo/internal/builder"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/ctxlog"
	"github.com/specialistvlad/toolchaingo/internal/fsutil"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/observe"
	"github.com/specialistvlad/toolchaingo/internal/registry"
	"github.com/specialistvlad/toolchaingo/internal/scope"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
)

const (
	// DeclarationExt is the extension of files evaluated by a pass.
	DeclarationExt = ".hcl"
	// ImportExt is the conventional extension of importable files.
	ImportExt = ".hcli"
)

// Result is the outcome of a successful pass.
type Result struct {
	Registry *registry.Registry
	// Files lists the evaluated declaration files, build config excluded.
	Files  []string
	PassID string
}

// Loader evaluates declaration trees.
type Loader struct {
	buildConfig string
	workers     int
	verbose     bool
	tracer      trace.Tracer
}

// Option configures a Loader.
type Option func(*Loader)

// WithBuildConfig names the build-config file. A relative path is taken
// relative to the root passed to Load.
func WithBuildConfig(path string) Option {
	return func(l *Loader) { l.buildConfig = path }
}

// WithWorkers bounds the number of files evaluated at once.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithVerbose logs every definition at Info level.
func WithVerbose(v bool) Option {
	return func(l *Loader) { l.verbose = v }
}

// WithTracer sets the tracer used for toolchain spans.
func WithTracer(t trace.Tracer) Option {
	return func(l *Loader) {
		if t != nil {
			l.tracer = t
		}
	}
}

// New returns a Loader configured by opts.
func New(opts ...Option) *Loader {
	l := &Loader{
		workers: runtime.GOMAXPROCS(0),
		tracer:  noop.NewTracerProvider().Tracer("toolchaingo"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load runs a pass over root, which is either a directory or a single
// declaration file. On error the partially filled registry is discarded.
func (l *Loader) Load(ctx context.Context, root string) (*Result, error) {
	passID := uuid.NewString()
	ctx = ctxlog.With(ctx, "pass_id", passID)
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	rootDir := root
	if !info.IsDir() {
		rootDir = filepath.Dir(root)
	}
	rootDir, err = filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	files, err := fsutil.FindFilesByExtension(root, DeclarationExt)
	if err != nil {
		return nil, fmt.Errorf("failed to discover declaration files: %w", err)
	}

	buildConfig := l.buildConfigPath(rootDir)
	files = exclude(files, buildConfig)
	logger.Debug("Discovered declaration files.", "root", rootDir, "count", len(files), "build_config", buildConfig)

	imports := newImporter(rootDir)
	observer := observe.Multi{observe.Log{Verbose: l.verbose}, observe.NewTrace(l.tracer, passID)}
	reg := registry.New()

	var seed *seedScope
	if buildConfig != "" {
		seed, err = l.evalBuildConfig(ctx, buildConfig, imports, observer)
		if err != nil {
			return nil, err
		}
		if !seed.defaultToolchain.IsZero() {
			reg.SetDefault(seed.defaultToolchain)
		}
	}

	b := builder.New(
		builder.WithObserver(observer),
		builder.WithImporter(imports),
		builder.WithDefaultToolchain(reg.Default()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return evalFile(gctx, b, rootDir, path, seed, reg)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}

	logger.Info("Configuration pass finished.", "files", len(files), "toolchains", reg.Len())
	return &Result{Registry: reg, Files: files, PassID: passID}, nil
}

func (l *Loader) buildConfigPath(rootDir string) string {
	if l.buildConfig == "" {
		return ""
	}
	if filepath.IsAbs(l.buildConfig) {
		return filepath.Clean(l.buildConfig)
	}
	return filepath.Join(rootDir, l.buildConfig)
}

func exclude(files []string, path string) []string {
	if path == "" {
		return files
	}
	out := files[:0:0]
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err == nil && abs == path {
			continue
		}
		out = append(out, f)
	}
	return out
}

// evalFile evaluates one declaration file. Seeded bindings live in a parent
// scope and count as used, so only the file's own assignments are checked.
func evalFile(ctx context.Context, b *builder.Builder, rootDir, path string, seed *seedScope, reg *registry.Registry) error {
	body, err := parseFile(path)
	if err != nil {
		return err
	}
	dir, err := sourceDir(rootDir, path)
	if err != nil {
		return err
	}

	base := scope.New(dir)
	seed.apply(base)
	base.SetItemCollector(reg)
	fileScope := base.NewChild()

	ctxlog.FromContext(ctx).Debug("Evaluating declaration file.", "path", path, "dir", dir)
	if err := b.Exec(ctx, fileScope, body); err != nil {
		return err
	}
	return fileScope.CheckUnused()
}

func parseFile(path string) (*hclsyntax.Body, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	file, diags := hclsyntax.ParseConfig(src, path, hcl.InitialPos)
	if err := builderr.FromDiagnostics(diags); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return file.Body.(*hclsyntax.Body), nil
}

// sourceDir returns the source-absolute directory of path, such as
// "//toolchains/gcc".
func sourceDir(rootDir, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(rootDir, filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is outside of %s", path, rootDir)
	}
	if rel == "." {
		return label.RootDir, nil
	}
	return label.RootDir + rel, nil
}
