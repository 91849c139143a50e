package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/chimera-sh/chimera-cli/internal/adapters/render/dashboard"
	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSplitCmd(app *app) *cobra.Command {
	var personaRef string
	var yes bool

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Reorganize accounts into AI-suggested personas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := resolveScope(cmd, app, personaRef)
			if err != nil {
				return err
			}
			app.service.SelectPersona(scope)

			if err := app.service.RefreshAccounts(cmd.Context()); err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(cmd, "Split reassigns accounts into new personas. Continue?")
				if err != nil {
					return err
				}
				if !ok {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return err
				}
			}

			var result domain.SplitResult
			split := func(ctx context.Context) error {
				var err error
				result, err = app.service.SplitPersonas(ctx)
				return err
			}

			if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Splitting personas...", split); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Created %d personas, assigned %d accounts.\n",
				result.BucketsCreated, result.AccountsAssigned)
			for _, persona := range result.Personas {
				_, _ = fmt.Fprintf(out, "  %s %s: %s\n",
					dashboard.PersonaTag(persona.Name), persona.Name, strings.Join(persona.Platforms, ", "))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&personaRef, "persona", "", "Persona id or name to scope the split (default: all accounts)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
