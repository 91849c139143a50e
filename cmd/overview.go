package cmd

import (
	"fmt"
	"strings"

	"github.com/chimera-sh/chimera-cli/internal/adapters/render/dashboard"
	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newOverviewCmd(app *app) *cobra.Command {
	var personaRef string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Print a one-shot dashboard snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.service.LoadAll(cmd.Context())

			// Personas are already in the snapshot; resolve the scope
			// against it instead of refetching.
			var scope *domain.PersonaID
			if ref := strings.TrimSpace(personaRef); ref != "" {
				persona, ok := app.service.Workspace().FindPersona(ref)
				if !ok {
					return fmt.Errorf("persona %q: %w", ref, domain.ErrPersonaNotFound)
				}
				id := persona.ID
				scope = &id
			}
			app.service.SelectPersona(scope)

			rendered, err := dashboard.Render(app.service.Workspace(), dashboard.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render overview: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&personaRef, "persona", "", "Persona id or name to scope the account list")

	return cmd
}
