package domain

import (
	"fmt"
	"time"
)

// SearchResult is the ephemeral outcome of a discovery search. It is shown
// once and never persisted.
type SearchResult struct {
	TotalFound       int
	NewAccountsSaved int
}

func (r SearchResult) Summary() string {
	return fmt.Sprintf("Found %d platforms, saved %d new accounts.", r.TotalFound, r.NewAccountsSaved)
}

// SummaryResult is an AI-generated markdown summary scoped to either all
// accounts (nil Scope) or a single persona. It must be discarded the moment
// the persona selection changes.
type SummaryResult struct {
	Scope       *PersonaID
	Markdown    string
	GeneratedAt time.Time
}

type SplitPersona struct {
	Name      string
	Platforms []string
}

// SplitResult is the ephemeral outcome of an AI persona-split. The split
// mutates assignments server-side, so consuming it refetches both personas
// and accounts.
type SplitResult struct {
	BucketsCreated   int
	AccountsAssigned int
	Personas         []SplitPersona
}
