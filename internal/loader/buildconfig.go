package loader

import (
	"context"

	"github.com/specialistvlad/toolchaingo/internal/builder"
	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/specialistvlad/toolchaingo/internal/ctxlog"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/scope"
	"github.com/zclconf/go-cty/cty"
)

// DefaultToolchainVar is the build-config binding naming the default
// toolchain.
const DefaultToolchainVar = "default_toolchain"

// seedScope holds what the build config hands to every declaration file.
type seedScope struct {
	values           []namedValue
	defaultToolchain label.Label
}

type namedValue struct {
	name  string
	value scope.Value
}

// apply copies the seeded bindings into s and marks them used. A nil
// receiver applies nothing.
func (ss *seedScope) apply(s *scope.Scope) {
	if ss == nil {
		return
	}
	for _, nv := range ss.values {
		s.Set(nv.name, nv.value.Value, nv.value.Range)
	}
	s.MarkAllUsed()
}

func (l *Loader) evalBuildConfig(ctx context.Context, path string, imports *importer, observer builder.Observer) (*seedScope, error) {
	body, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	s := scope.New(label.RootDir)
	s.SetFlags(scope.ProcessingBuildConfig)
	b := builder.New(builder.WithObserver(observer), builder.WithImporter(imports))
	if err := b.Exec(ctx, s, body); err != nil {
		return nil, err
	}

	seed := &seedScope{}
	if v, ok := s.GetValue(DefaultToolchainVar, true); ok {
		tc, err := resolveDefaultToolchain(v)
		if err != nil {
			return nil, err
		}
		seed.defaultToolchain = tc
	}
	for _, name := range s.Names() {
		v, _ := s.GetLocal(name)
		seed.values = append(seed.values, namedValue{name: name, value: *v})
	}

	ctxlog.FromContext(ctx).Debug("Evaluated build config.",
		"path", path, "bindings", len(seed.values), "default_toolchain", seed.defaultToolchain.String())
	return seed, nil
}

func resolveDefaultToolchain(v *scope.Value) (label.Label, error) {
	if !v.Value.Type().Equals(cty.String) || v.Value.IsNull() || !v.Value.IsKnown() {
		return label.Label{}, builderr.New(builderr.TypeMismatch, "Incorrect type.").
			WithDetail("This value was a %s, not a string.", v.Value.Type().FriendlyName()).
			WithField(DefaultToolchainVar).
			At(&v.Range)
	}
	l, err := label.ResolveToolchain(label.RootDir, v.Value.AsString())
	if err != nil {
		return label.Label{}, builderr.New(builderr.EvalFailed, "Invalid default toolchain.").
			WithField(DefaultToolchainVar).
			Wrap(err).
			At(&v.Range)
	}
	return l, nil
}
