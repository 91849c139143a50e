package application

import (
	"strconv"
	"strings"
	"time"

	"github.com/chimera-sh/chimera-cli/internal/domain"
)

// Workspace is the client-side snapshot of the remote directory plus the
// ephemeral view state layered on top of it. The service owns the single
// mutable instance; everything handed out is a copy and safe to keep.
type Workspace struct {
	User     domain.User
	Sessions []domain.Session
	Personas []domain.Persona
	Accounts []domain.Account

	// Selection is the persona the views are scoped to; nil means the
	// "All Accounts" view.
	Selection *domain.PersonaID

	// Ephemeral results. Summary and Split are scoped to Selection and
	// cleared whenever it changes.
	Search  *domain.SearchResult
	Summary *domain.SummaryResult
	Split   *domain.SplitResult

	LoadedAt time.Time
}

// Stats are pure functions of the snapshot, recomputed on every call and
// never fetched or cached separately, so they cannot drift from the
// account list itself.
type Stats struct {
	TotalAccounts      int
	TotalPersonas      int
	UnassignedAccounts int
	VisibleAccounts    int
}

// VisibleAccounts returns the accounts in scope for the current selection:
// every account when no persona is selected, otherwise exactly the
// accounts assigned to it.
func (w Workspace) VisibleAccounts() []domain.Account {
	if w.Selection == nil {
		return append([]domain.Account(nil), w.Accounts...)
	}

	visible := make([]domain.Account, 0, len(w.Accounts))
	for _, account := range w.Accounts {
		if account.In(*w.Selection) {
			visible = append(visible, account)
		}
	}

	return visible
}

func (w Workspace) Stats() Stats {
	unassigned := 0
	for _, account := range w.Accounts {
		if !account.Assigned() {
			unassigned++
		}
	}

	return Stats{
		TotalAccounts:      len(w.Accounts),
		TotalPersonas:      len(w.Personas),
		UnassignedAccounts: unassigned,
		VisibleAccounts:    len(w.VisibleAccounts()),
	}
}

func (w Workspace) PersonaByID(id domain.PersonaID) (domain.Persona, bool) {
	for _, persona := range w.Personas {
		if persona.ID == id {
			return persona, true
		}
	}

	return domain.Persona{}, false
}

// SelectionName is the heading for the current scope.
func (w Workspace) SelectionName() string {
	if w.Selection == nil {
		return "All Accounts"
	}

	if persona, ok := w.PersonaByID(*w.Selection); ok {
		return persona.Name
	}

	return "All Accounts"
}

// FindPersona resolves a command-line persona reference, either a numeric
// id or a case-insensitive name.
func (w Workspace) FindPersona(ref string) (domain.Persona, bool) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return domain.Persona{}, false
	}

	if id, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		if persona, ok := w.PersonaByID(domain.PersonaID(id)); ok {
			return persona, true
		}
	}

	for _, persona := range w.Personas {
		if strings.EqualFold(persona.Name, trimmed) {
			return persona, true
		}
	}

	return domain.Persona{}, false
}

func (w Workspace) clone() Workspace {
	out := w
	out.Sessions = append([]domain.Session(nil), w.Sessions...)
	out.Personas = append([]domain.Persona(nil), w.Personas...)
	out.Accounts = append([]domain.Account(nil), w.Accounts...)

	// Element-level pointers are copied too, so no snapshot holder can
	// reach back into the model's state through them.
	for i, session := range out.Sessions {
		if session.CompletedAt != nil {
			completed := *session.CompletedAt
			out.Sessions[i].CompletedAt = &completed
		}
	}
	for i, account := range out.Accounts {
		if account.Bucket != nil {
			bucket := *account.Bucket
			out.Accounts[i].Bucket = &bucket
		}
	}

	if w.Selection != nil {
		selected := *w.Selection
		out.Selection = &selected
	}
	if w.Search != nil {
		search := *w.Search
		out.Search = &search
	}
	if w.Summary != nil {
		summary := *w.Summary
		if w.Summary.Scope != nil {
			scope := *w.Summary.Scope
			summary.Scope = &scope
		}
		out.Summary = &summary
	}
	if w.Split != nil {
		split := *w.Split
		split.Personas = append([]domain.SplitPersona(nil), w.Split.Personas...)
		out.Split = &split
	}

	return out
}
