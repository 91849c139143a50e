package cmd

import (
	"fmt"
	"strings"

	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/spf13/cobra"
)

// resolvePersona refreshes the persona list and resolves a command-line
// reference, either a numeric id or a case-insensitive name.
func resolvePersona(cmd *cobra.Command, app *app, ref string) (domain.Persona, error) {
	if err := app.service.RefreshPersonas(cmd.Context()); err != nil {
		return domain.Persona{}, err
	}

	persona, ok := app.service.Workspace().FindPersona(ref)
	if !ok {
		return domain.Persona{}, fmt.Errorf("persona %q: %w", ref, domain.ErrPersonaNotFound)
	}

	return persona, nil
}

// resolveScope maps an optional --persona flag onto a selection scope. An
// empty reference means the all-accounts scope.
func resolveScope(cmd *cobra.Command, app *app, ref string) (*domain.PersonaID, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, nil
	}

	persona, err := resolvePersona(cmd, app, ref)
	if err != nil {
		return nil, err
	}

	id := persona.ID
	return &id, nil
}
