package chain

import (
	"context"
	"errors"
	"fmt"

	envsource "github.com/chimera-sh/chimera-cli/internal/adapters/identity/env"
	filesource "github.com/chimera-sh/chimera-cli/internal/adapters/identity/file"
	"github.com/chimera-sh/chimera-cli/internal/ports"
)

// Source tries a primary token source and falls back to a secondary one.
// Context cancellation is never masked by the fallback.
type Source struct {
	primary  ports.TokenSource
	fallback ports.TokenSource
}

var _ ports.TokenSource = (*Source)(nil)

var (
	errNilPrimarySource  = errors.New("primary token source is nil")
	errNilFallbackSource = errors.New("fallback token source is nil")
)

func NewSource(primary, fallback ports.TokenSource) (*Source, error) {
	if primary == nil {
		return nil, errNilPrimarySource
	}
	if fallback == nil {
		return nil, errNilFallbackSource
	}

	return &Source{primary: primary, fallback: fallback}, nil
}

// NewEnvFirstWithFileFallback prefers an environment token and falls back
// to the stored token file.
func NewEnvFirstWithFileFallback(envKey, tokenPath string) (*Source, error) {
	return NewSource(envsource.NewSource(envKey), filesource.NewSource(tokenPath))
}

func (s *Source) Token(ctx context.Context) (string, error) {
	token, err := s.primary.Token(ctx)
	if err == nil {
		return token, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackToken, fallbackErr := s.fallback.Token(ctx)
	if fallbackErr == nil {
		return fallbackToken, nil
	}

	return "", fmt.Errorf("primary token source failed: %w; fallback token source failed: %w", err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
