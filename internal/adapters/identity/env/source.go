package env

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/chimera-sh/chimera-cli/internal/ports"
)

// Source reads the bearer token from an environment variable on every
// call, so an externally refreshed token is picked up without restarting.
type Source struct {
	key string
}

var _ ports.TokenSource = (*Source)(nil)

func NewSource(key string) *Source {
	return &Source{key: key}
}

func (s *Source) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	token := strings.TrimSpace(os.Getenv(s.key))
	if token == "" {
		return "", fmt.Errorf("environment variable %s: %w", s.key, domain.ErrTokenNotFound)
	}

	return token, nil
}
