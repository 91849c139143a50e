package dashboard

import (
	"testing"
	"time"

	"github.com/chimera-sh/chimera-cli/internal/application"
	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkspace() application.Workspace {
	return application.Workspace{
		User: domain.User{ID: 7, Email: "alice@example.com"},
		Personas: []domain.Persona{
			{ID: 1, Name: "Unassigned"},
			{ID: 2, Name: "Work"},
		},
		Accounts: []domain.Account{
			{ID: "a1", Platform: "github", AccountName: "alice", URL: "https://github.com/alice", Bucket: &domain.PersonaRef{ID: 2, Name: "Work"}},
			{ID: "a2", Platform: "twitter", AccountName: "alice"},
		},
	}
}

func TestRenderShowsUserAndPersonas(t *testing.T) {
	out, err := Render(testWorkspace(), RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, out, "Chimera Dashboard")
	assert.Contains(t, out, "Welcome back, alice!")
	assert.Contains(t, out, "All Accounts (2)")
	assert.Contains(t, out, "Work (1)")
	assert.Contains(t, out, "Unassigned (0)")
}

func TestRenderAllAccountsScope(t *testing.T) {
	out, err := Render(testWorkspace(), RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, out, "github  alice  [Work]")
	assert.Contains(t, out, "twitter  alice  [Unassigned]")
	assert.Contains(t, out, "Total Accounts: 2")
	assert.Contains(t, out, "Unassigned Accounts: 1")
}

func TestRenderPersonaScopeFiltersAccounts(t *testing.T) {
	ws := testWorkspace()
	selected := domain.PersonaID(2)
	ws.Selection = &selected

	out, err := Render(ws, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, out, "> 💼 Work")
	assert.Contains(t, out, "github  alice")
	assert.NotContains(t, out, "twitter  alice")

	// Stats stay global even in a filtered view.
	assert.Contains(t, out, "Total Accounts: 2")
}

func TestRenderEmptyScope(t *testing.T) {
	ws := testWorkspace()
	ws.Accounts = nil

	out, err := Render(ws, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, out, "No accounts found")
}

func TestRenderEphemeralResults(t *testing.T) {
	ws := testWorkspace()
	ws.Search = &domain.SearchResult{TotalFound: 12, NewAccountsSaved: 5}
	ws.Split = &domain.SplitResult{
		BucketsCreated:   1,
		AccountsAssigned: 2,
		Personas:         []domain.SplitPersona{{Name: "Developer", Platforms: []string{"github", "gitlab"}}},
	}
	ws.Summary = &domain.SummaryResult{Markdown: "## Highlights\nMostly code hosting."}

	out, err := Render(ws, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, out, "Found 12 platforms, saved 5 new accounts.")
	assert.Contains(t, out, "Split created 1 personas and assigned 2 accounts.")
	assert.Contains(t, out, "Developer: github, gitlab")
	assert.Contains(t, out, "Summary (All Accounts)")
	assert.Contains(t, out, "Mostly code hosting.")
}

func TestRenderLoadedAgo(t *testing.T) {
	ws := testWorkspace()
	ws.LoadedAt = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	out, err := Render(ws, RenderOptions{Now: ws.LoadedAt.Add(90 * time.Second)})
	require.NoError(t, err)

	assert.Contains(t, out, "loaded 1m30s ago")
}
