package testutil

import (
	"errors"
	"testing"

	"github.com/specialistvlad/toolchaingo/internal/builderr"
	"github.com/stretchr/testify/require"
)

// RequireKind fails the test unless err carries kind and its message
// contains every fragment.
func RequireKind(t *testing.T, err error, kind builderr.Kind, fragments ...string) {
	t.Helper()

	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "expected %v, got %v (%v)", kind, builderr.KindOf(err), err)
	for _, f := range fragments {
		require.Contains(t, err.Error(), f)
	}
}
