package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/chimera-sh/chimera-cli/internal/ports"
)

const (
	tokenDirMode  = 0o700
	tokenFileMode = 0o600
)

// Source keeps the bearer token in a mode-0600 file. The file is re-read
// on every Token call; identity tooling that rotates the token in place is
// picked up without restarting.
type Source struct {
	path string
	mu   sync.RWMutex
}

var _ ports.TokenSource = (*Source)(nil)

func NewSource(path string) *Source {
	return &Source{path: filepath.Clean(path)}
}

func (s *Source) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("token file %q: %w", s.path, domain.ErrTokenNotFound)
		}
		return "", fmt.Errorf("read token file %q: %w", s.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %q is empty: %w", s.path, domain.ErrTokenNotFound)
	}

	return token, nil
}

// Write stores a token for later calls. Used by `chimera auth set-token`.
func (s *Source) Write(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), tokenDirMode); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(token+"\n"), tokenFileMode); err != nil {
		return fmt.Errorf("write token file %q: %w", s.path, err)
	}

	return nil
}

func (s *Source) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete token file %q: %w", s.path, err)
	}

	return nil
}
