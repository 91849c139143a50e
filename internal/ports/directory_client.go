package ports

import (
	"context"

	"github.com/chimera-sh/chimera-cli/internal/domain"
)

// DirectoryClient is the data access layer over the Chimera backend. One
// method per backend capability; no retries, no speculative local mutation.
// Implementations acquire a fresh bearer token per call.
type DirectoryClient interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	ListSessions(ctx context.Context) ([]domain.Session, error)

	ListPersonas(ctx context.Context) ([]domain.Persona, error)
	CreatePersona(ctx context.Context, name, description string) error
	RenamePersona(ctx context.Context, id domain.PersonaID, name string) error
	DeletePersona(ctx context.Context, id domain.PersonaID) error

	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// ReassignAccount moves one account into the given persona; a nil
	// persona id unassigns it.
	ReassignAccount(ctx context.Context, id domain.AccountID, persona *domain.PersonaID) error

	SearchAccounts(ctx context.Context, username string) (domain.SearchResult, error)
	// GenerateSummary and SplitPersonas take a nil scope for "all
	// accounts"; the scope field is omitted from the request entirely in
	// that case, not sent as a sentinel.
	GenerateSummary(ctx context.Context, scope *domain.PersonaID) (string, error)
	SplitPersonas(ctx context.Context, scope *domain.PersonaID) (domain.SplitResult, error)

	Health(ctx context.Context) error
}
