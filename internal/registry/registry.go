package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/specialistvlad/toolchaingo/internal/ctxlog"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
	"github.com/zclconf/go-cty/cty"
)

// ErrDuplicateToolchain is returned when a label is inserted twice.
var ErrDuplicateToolchain = errors.New("toolchain already defined")

// Registry holds every toolchain defined during a configuration pass, plus
// the label of the default toolchain.
type Registry struct {
	mu               sync.RWMutex
	toolchains       map[label.Label]*toolchain.Toolchain
	defaultToolchain label.Label
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{toolchains: make(map[label.Label]*toolchain.Toolchain)}
}

// Insert adds a completed toolchain. Inserting a label that is already
// present fails with ErrDuplicateToolchain and leaves the first definition in
// place.
func (r *Registry) Insert(tc *toolchain.Toolchain) error {
	if !tc.IsSetupComplete() {
		return fmt.Errorf("toolchain %s inserted before setup completed", tc.Label())
	}
	l := tc.Label()

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, exists := r.toolchains[l]; exists {
		return fmt.Errorf("%w: %s (previous definition at %s)", ErrDuplicateToolchain, l, prev.DefinedFrom())
	}
	r.toolchains[l] = tc
	return nil
}

// Get returns the toolchain registered under l.
func (r *Registry) Get(l label.Label) (*toolchain.Toolchain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tc, ok := r.toolchains[l]
	return tc, ok
}

// All returns every toolchain sorted by label.
func (r *Registry) All() []*toolchain.Toolchain {
	r.mu.RLock()
	out := make([]*toolchain.Toolchain, 0, len(r.toolchains))
	for _, tc := range r.toolchains {
		out = append(out, tc)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Label().Less(out[j].Label()) })
	return out
}

// Len returns the number of registered toolchains.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.toolchains)
}

// SetDefault records the build's default toolchain. It may be set before the
// toolchain itself is inserted.
func (r *Registry) SetDefault(l label.Label) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultToolchain = l
}

// Default returns the default toolchain label, or the zero Label.
func (r *Registry) Default() label.Label {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultToolchain
}

// ArgsFor returns the argument overrides to apply when building under the
// toolchain l. The default toolchain always builds with the default
// arguments, so it gets nil.
func (r *Registry) ArgsFor(l label.Label) map[string]cty.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if l == r.defaultToolchain {
		return nil
	}
	tc, ok := r.toolchains[l]
	if !ok {
		return nil
	}
	return tc.Args()
}

// Validate checks references between registered toolchains once a pass is
// complete: the default toolchain must exist, and every dependency must name
// a registered toolchain. All problems are reported together.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []error

	def := r.Default()
	if !def.IsZero() {
		if _, ok := r.Get(def); !ok {
			errs = append(errs, fmt.Errorf("default toolchain %s is not defined", def))
		}
	}

	for _, tc := range r.All() {
		for _, dep := range tc.Deps() {
			if !dep.HasToolchain() {
				continue
			}
			if _, ok := r.Get(dep.Toolchain()); !ok {
				errs = append(errs, fmt.Errorf("toolchain %s: dependency %s refers to undefined toolchain %s", tc.Label(), dep, dep.Toolchain()))
			}
		}
	}

	if len(errs) > 0 {
		logger.Debug("Registry validation failed.", "errors", len(errs))
		return errors.Join(errs...)
	}
	logger.Debug("Registry validation passed.", "toolchains", r.Len())
	return nil
}
