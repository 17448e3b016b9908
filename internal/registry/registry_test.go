package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/toolchaingo/internal/label"
	"github.com/specialistvlad/toolchaingo/internal/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func sealed(l label.Label, deps ...label.Label) *toolchain.Toolchain {
	tc := toolchain.New(l, hcl.Range{Filename: "BUILD.hcl"})
	tc.SetDeps(deps)
	tc.MergeArgs(map[string]cty.Value{"is_cross": cty.True})
	tc.SetupComplete()
	return tc
}

func TestInsertAndGet(t *testing.T) {
	t.Parallel()

	r := New()
	gcc := label.New("//toolchains", "gcc")
	require.NoError(t, r.Insert(sealed(gcc)))

	got, ok := r.Get(gcc)
	require.True(t, ok)
	assert.Equal(t, gcc, got.Label())
	assert.Equal(t, 1, r.Len())

	_, ok = r.Get(label.New("//toolchains", "clang"))
	assert.False(t, ok)
}

func TestInsertDuplicate(t *testing.T) {
	t.Parallel()

	r := New()
	l := label.New("//toolchains", "gcc")
	first := sealed(l)
	require.NoError(t, r.Insert(first))

	err := r.Insert(sealed(l))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateToolchain))

	got, _ := r.Get(l)
	assert.Same(t, first, got)
}

func TestInsertRequiresSetupComplete(t *testing.T) {
	t.Parallel()

	r := New()
	err := r.Insert(toolchain.New(label.New("//", "x"), hcl.Range{}))
	require.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestAllSorted(t *testing.T) {
	t.Parallel()

	r := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.Insert(sealed(label.New("//tc", name))))
	}

	var names []string
	for _, tc := range r.All() {
		names = append(names, tc.Label().Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestArgsFor(t *testing.T) {
	t.Parallel()

	r := New()
	host := label.New("//tc", "host")
	arm := label.New("//tc", "arm")
	require.NoError(t, r.Insert(sealed(host)))
	require.NoError(t, r.Insert(sealed(arm)))
	r.SetDefault(host)

	assert.Equal(t, host, r.Default())
	assert.Nil(t, r.ArgsFor(host))
	assert.Nil(t, r.ArgsFor(label.New("//tc", "missing")))
	args := r.ArgsFor(arm)
	require.NotNil(t, args)
	assert.True(t, args["is_cross"].RawEquals(cty.True))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	host := label.New("//tc", "host")
	arm := label.New("//tc", "arm")

	r := New()
	r.SetDefault(host)
	require.NoError(t, r.Insert(sealed(host)))
	require.NoError(t, r.Insert(sealed(arm, label.New("//build", "bootstrap").WithToolchain(host))))
	assert.NoError(t, r.Validate(ctx))

	r = New()
	r.SetDefault(label.New("//tc", "missing"))
	require.NoError(t, r.Insert(sealed(arm,
		label.New("//build", "a").WithToolchain(label.New("//tc", "nope")),
		label.New("//build", "b"),
	)))
	err := r.Validate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default toolchain //tc:missing is not defined")
	assert.Contains(t, err.Error(), "undefined toolchain //tc:nope")
}

func TestConcurrentInsert(t *testing.T) {
	t.Parallel()

	r := New()
	const n = 64

	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for i := 0; i < n; i++ {
		l := label.New("//tc", fmt.Sprintf("t%d", i))
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- r.Insert(sealed(l))
				_ = r.All()
			}()
		}
	}
	wg.Wait()
	close(errs)

	var dupes int
	for err := range errs {
		if err != nil {
			require.True(t, errors.Is(err, ErrDuplicateToolchain))
			dupes++
		}
	}
	assert.Equal(t, n, dupes)
	assert.Equal(t, n, r.Len())
}
