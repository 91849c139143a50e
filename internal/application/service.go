package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/chimera-sh/chimera-cli/internal/ports"
	"go.uber.org/zap"
)

// Service is the persona/account reconciliation model. It owns the one
// mutable Workspace and defines, for every user intent, which remote
// operations fire and which local invalidations follow. Callers drive it
// from a single goroutine; the only internal concurrency is the initial
// load fan-out, which joins before the snapshot is touched.
type Service struct {
	client ports.DirectoryClient
	clock  ports.Clock
	logger *zap.Logger

	ws Workspace
}

func NewService(client ports.DirectoryClient, clock ports.Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		client: client,
		clock:  clock,
		logger: logger,
	}
}

// Workspace returns a copy of the current snapshot. Views render from it
// and never mutate the model directly.
func (s *Service) Workspace() Workspace {
	return s.ws.clone()
}

// LoadAll fetches the user profile, sessions, personas, and accounts. The
// four fetches are independent and issued concurrently; a failure in one
// does not block the others and degrades that slice to its previous value,
// reported only through the log.
func (s *Service) LoadAll(ctx context.Context) {
	var (
		wg       sync.WaitGroup
		user     domain.User
		sessions []domain.Session
		personas []domain.Persona
		accounts []domain.Account

		userErr, sessionsErr, personasErr, accountsErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		user, userErr = s.client.CurrentUser(ctx)
	}()
	go func() {
		defer wg.Done()
		sessions, sessionsErr = s.client.ListSessions(ctx)
	}()
	go func() {
		defer wg.Done()
		personas, personasErr = s.client.ListPersonas(ctx)
	}()
	go func() {
		defer wg.Done()
		accounts, accountsErr = s.client.ListAccounts(ctx)
	}()
	wg.Wait()

	if userErr != nil {
		s.logger.Warn("fetch user profile failed", zap.Error(userErr))
	} else {
		s.ws.User = user
	}
	if sessionsErr != nil {
		s.logger.Warn("fetch sessions failed", zap.Error(sessionsErr))
	} else {
		s.ws.Sessions = sessions
	}
	if personasErr != nil {
		s.logger.Warn("fetch personas failed", zap.Error(personasErr))
	} else {
		s.ws.Personas = personas
	}
	if accountsErr != nil {
		s.logger.Warn("fetch accounts failed", zap.Error(accountsErr))
	} else {
		s.ws.Accounts = accounts
	}

	s.ws.LoadedAt = s.clock.Now()
}

func (s *Service) RefreshUser(ctx context.Context) error {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("fetch user profile: %w", err)
	}

	s.ws.User = user
	return nil
}

func (s *Service) RefreshSessions(ctx context.Context) error {
	sessions, err := s.client.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("fetch sessions: %w", err)
	}

	s.ws.Sessions = sessions
	return nil
}

func (s *Service) RefreshPersonas(ctx context.Context) error {
	personas, err := s.client.ListPersonas(ctx)
	if err != nil {
		return fmt.Errorf("fetch personas: %w", err)
	}

	s.ws.Personas = personas
	return nil
}

func (s *Service) RefreshAccounts(ctx context.Context) error {
	accounts, err := s.client.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("fetch accounts: %w", err)
	}

	s.ws.Accounts = accounts
	return nil
}

// SelectPersona is a pure local transition. It unconditionally discards
// the persona-scoped ephemeral results: a summary computed for one scope
// must never be shown against another.
func (s *Service) SelectPersona(id *domain.PersonaID) {
	if id == nil {
		s.ws.Selection = nil
	} else {
		selected := *id
		s.ws.Selection = &selected
	}

	s.ws.Summary = nil
	s.ws.Split = nil
}

func (s *Service) CreatePersona(ctx context.Context, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrEmptyPersonaName
	}

	if err := s.client.CreatePersona(ctx, name, strings.TrimSpace(description)); err != nil {
		return fmt.Errorf("create persona: %w", err)
	}

	s.refetchAfterMutation(ctx, "create persona", s.RefreshPersonas)
	return nil
}

func (s *Service) RenamePersona(ctx context.Context, id domain.PersonaID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.ErrEmptyPersonaName
	}

	persona, ok := s.ws.PersonaByID(id)
	if !ok {
		return fmt.Errorf("rename persona %d: %w", id, domain.ErrPersonaNotFound)
	}
	if persona.Reserved() {
		return domain.ErrReservedPersona
	}

	if err := s.client.RenamePersona(ctx, id, newName); err != nil {
		return fmt.Errorf("rename persona: %w", err)
	}

	s.refetchAfterMutation(ctx, "rename persona", s.RefreshPersonas)
	return nil
}

// DeletePersona removes a persona after the reserved-name guard. On
// success both personas and accounts are refetched, so accounts formerly
// assigned to it come back unassigned rather than dangling; if the deleted
// persona was selected the selection resets to the all-accounts view.
func (s *Service) DeletePersona(ctx context.Context, id domain.PersonaID) error {
	persona, ok := s.ws.PersonaByID(id)
	if !ok {
		return fmt.Errorf("delete persona %d: %w", id, domain.ErrPersonaNotFound)
	}
	if persona.Reserved() {
		return domain.ErrReservedPersona
	}

	if err := s.client.DeletePersona(ctx, id); err != nil {
		return fmt.Errorf("delete persona: %w", err)
	}

	s.refetchAfterMutation(ctx, "delete persona", s.RefreshPersonas, s.RefreshAccounts)

	if s.ws.Selection != nil && *s.ws.Selection == id {
		s.SelectPersona(nil)
	}

	return nil
}

func (s *Service) ReassignAccount(ctx context.Context, id domain.AccountID, persona *domain.PersonaID) error {
	if err := s.client.ReassignAccount(ctx, id, persona); err != nil {
		return fmt.Errorf("reassign account: %w", err)
	}

	s.refetchAfterMutation(ctx, "reassign account", s.RefreshAccounts)
	return nil
}

// SearchAccounts runs a discovery search. A search may create new sessions
// and new accounts server-side, so both are refetched on success.
func (s *Service) SearchAccounts(ctx context.Context, username string) (domain.SearchResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.SearchResult{}, domain.ErrEmptyUsername
	}

	result, err := s.client.SearchAccounts(ctx, username)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("search accounts: %w", err)
	}

	captured := result
	s.ws.Search = &captured

	s.refetchAfterMutation(ctx, "search accounts", s.RefreshAccounts, s.RefreshSessions)
	return result, nil
}

// GenerateSummary asks the backend for an AI summary of the current
// selection scope. Read-only: nothing is refetched afterwards.
func (s *Service) GenerateSummary(ctx context.Context) (domain.SummaryResult, error) {
	if len(s.ws.VisibleAccounts()) == 0 {
		return domain.SummaryResult{}, domain.ErrEmptyScope
	}

	markdown, err := s.client.GenerateSummary(ctx, s.ws.Selection)
	if err != nil {
		return domain.SummaryResult{}, fmt.Errorf("generate summary: %w", err)
	}

	summary := domain.SummaryResult{
		Scope:       s.ws.Selection,
		Markdown:    markdown,
		GeneratedAt: s.clock.Now(),
	}
	s.ws.Summary = &summary

	return summary, nil
}

// SplitPersonas asks the backend to reorganize the current scope into
// AI-suggested personas. The split mutates assignments server-side, so
// personas and accounts are both refetched on success.
func (s *Service) SplitPersonas(ctx context.Context) (domain.SplitResult, error) {
	if len(s.ws.VisibleAccounts()) == 0 {
		return domain.SplitResult{}, domain.ErrEmptyScope
	}

	result, err := s.client.SplitPersonas(ctx, s.ws.Selection)
	if err != nil {
		return domain.SplitResult{}, fmt.Errorf("split personas: %w", err)
	}

	captured := result
	s.ws.Split = &captured

	s.refetchAfterMutation(ctx, "split personas", s.RefreshPersonas, s.RefreshAccounts)
	return result, nil
}

// refetchAfterMutation reloads the slices a successful mutation could have
// affected. A refetch failure does not undo the mutation, which the server
// already confirmed; it keeps the previous slice and is reported through
// the log only.
func (s *Service) refetchAfterMutation(ctx context.Context, op string, refetches ...func(context.Context) error) {
	for _, refetch := range refetches {
		if err := refetch(ctx); err != nil {
			s.logger.Warn("refetch after mutation failed", zap.String("op", op), zap.Error(err))
		}
	}
}
