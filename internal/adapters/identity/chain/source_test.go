package chain

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	filesource "github.com/chimera-sh/chimera-cli/internal/adapters/identity/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	token string
	err   error
	calls int
}

func (s *stubSource) Token(_ context.Context) (string, error) {
	s.calls++
	return s.token, s.err
}

func TestNewSourceRejectsNilSources(t *testing.T) {
	_, err := NewSource(nil, &stubSource{})
	require.Error(t, err)

	_, err = NewSource(&stubSource{}, nil)
	require.Error(t, err)
}

func TestPrimaryWinsWhenAvailable(t *testing.T) {
	primary := &stubSource{token: "env-token"}
	fallback := &stubSource{token: "file-token"}

	source, err := NewSource(primary, fallback)
	require.NoError(t, err)

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
	assert.Zero(t, fallback.calls)
}

func TestFallbackUsedWhenPrimaryFails(t *testing.T) {
	primary := &stubSource{err: errors.New("not set")}
	fallback := &stubSource{token: "file-token"}

	source, err := NewSource(primary, fallback)
	require.NoError(t, err)

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file-token", token)
}

func TestBothFailuresReported(t *testing.T) {
	primary := &stubSource{err: errors.New("env empty")}
	fallback := &stubSource{err: errors.New("file missing")}

	source, err := NewSource(primary, fallback)
	require.NoError(t, err)

	_, err = source.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env empty")
	assert.Contains(t, err.Error(), "file missing")
}

func TestContextCancellationSkipsFallback(t *testing.T) {
	primary := &stubSource{err: context.Canceled}
	fallback := &stubSource{token: "file-token"}

	source, err := NewSource(primary, fallback)
	require.NoError(t, err)

	_, err = source.Token(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fallback.calls)
}

func TestEnvFirstWithFileFallback(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "token")
	require.NoError(t, filesource.NewSource(tokenPath).Write(context.Background(), "stored-token"))

	t.Setenv("CHIMERA_CHAIN_TEST_TOKEN", "")

	source, err := NewEnvFirstWithFileFallback("CHIMERA_CHAIN_TEST_TOKEN", tokenPath)
	require.NoError(t, err)

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored-token", token)

	t.Setenv("CHIMERA_CHAIN_TEST_TOKEN", "env-token")

	token, err = source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
}
