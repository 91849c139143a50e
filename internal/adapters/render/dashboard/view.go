package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chimera-sh/chimera-cli/internal/application"
	"github.com/chimera-sh/chimera-cli/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(ws application.Workspace, opts RenderOptions, s styles) string {
	stats := ws.Stats()

	lines := []string{
		s.title.Render("Chimera Dashboard"),
		s.header.Render(fmt.Sprintf("Welcome back, %s!", ws.User.DisplayName())),
	}

	lines = append(lines, s.section.Render(renderPersonas(ws, s)))
	lines = append(lines, s.section.Render(renderAccounts(ws, s)))
	lines = append(lines, s.section.Render(renderStats(stats, s)))

	if results := renderResults(ws, s); results != "" {
		lines = append(lines, s.section.Render(results))
	}

	if !ws.LoadedAt.IsZero() && !opts.Now.IsZero() {
		lines = append(lines, s.section.Render(s.meta.Render(fmt.Sprintf("loaded %s ago", opts.Now.Sub(ws.LoadedAt).Round(time.Second)))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPersonas(ws application.Workspace, s styles) string {
	parts := []string{s.heading.Render("Personas")}

	parts = append(parts, personaLine("•", "All Accounts", len(ws.Accounts), ws.Selection == nil, s))
	for _, persona := range ws.Personas {
		assigned := 0
		for _, account := range ws.Accounts {
			if account.In(persona.ID) {
				assigned++
			}
		}

		selected := ws.Selection != nil && *ws.Selection == persona.ID
		parts = append(parts, personaLine(PersonaTag(persona.Name), persona.Name, assigned, selected, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func personaLine(tag, name string, count int, selected bool, s styles) string {
	marker := "  "
	style := s.item
	if selected {
		marker = "> "
		style = s.selected
	}

	return style.Render(fmt.Sprintf("%s%s %s (%d)", marker, tag, name, count))
}

func renderAccounts(ws application.Workspace, s styles) string {
	parts := []string{s.heading.Render(ws.SelectionName())}

	visible := ws.VisibleAccounts()
	if len(visible) == 0 {
		parts = append(parts, s.empty.Render("No accounts found"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, account := range visible {
		parts = append(parts, s.item.Render(accountLine(account)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func accountLine(account domain.Account) string {
	assignment := domain.ReservedPersonaName
	if account.Bucket != nil {
		assignment = account.Bucket.Name
	}

	line := fmt.Sprintf("%s  %s  [%s]", account.Platform, account.AccountName, assignment)
	if account.URL != "" {
		line += "  " + account.URL
	}

	return line
}

func renderStats(stats application.Stats, s styles) string {
	parts := []string{
		s.heading.Render("Statistics"),
		s.detail.Render(fmt.Sprintf("Total Accounts: %d", stats.TotalAccounts)),
		s.detail.Render(fmt.Sprintf("Total Personas: %d", stats.TotalPersonas)),
		s.detail.Render(fmt.Sprintf("Unassigned Accounts: %d", stats.UnassignedAccounts)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderResults(ws application.Workspace, s styles) string {
	parts := make([]string, 0, 4)

	if ws.Search != nil {
		parts = append(parts, s.result.Render(ws.Search.Summary()))
	}
	if ws.Split != nil {
		parts = append(parts, s.result.Render(fmt.Sprintf(
			"Split created %d personas and assigned %d accounts.",
			ws.Split.BucketsCreated, ws.Split.AccountsAssigned,
		)))
		for _, persona := range ws.Split.Personas {
			parts = append(parts, s.detail.Render(fmt.Sprintf("  %s %s: %s",
				PersonaTag(persona.Name), persona.Name, strings.Join(persona.Platforms, ", "))))
		}
	}
	if ws.Summary != nil {
		parts = append(parts, s.heading.Render(fmt.Sprintf("Summary (%s)", ws.SelectionName())))
		parts = append(parts, s.item.Render(strings.TrimSpace(ws.Summary.Markdown)))
	}

	if len(parts) == 0 {
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
