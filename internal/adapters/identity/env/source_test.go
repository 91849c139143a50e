package env

import (
	"context"
	"testing"

	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenReadFromEnvironment(t *testing.T) {
	t.Setenv("CHIMERA_TEST_TOKEN", "  secret-token \n")

	source := NewSource("CHIMERA_TEST_TOKEN")

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)
}

func TestTokenRereadPerCall(t *testing.T) {
	t.Setenv("CHIMERA_TEST_TOKEN", "first")

	source := NewSource("CHIMERA_TEST_TOKEN")

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	t.Setenv("CHIMERA_TEST_TOKEN", "second")

	token, err = source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestMissingVariableReportsNotFound(t *testing.T) {
	t.Setenv("CHIMERA_TEST_TOKEN", "")

	source := NewSource("CHIMERA_TEST_TOKEN")

	_, err := source.Token(context.Background())
	require.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestCancelledContextShortCircuits(t *testing.T) {
	t.Setenv("CHIMERA_TEST_TOKEN", "secret")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource("CHIMERA_TEST_TOKEN").Token(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
