package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/chimera-sh/chimera-cli/internal/adapters/render/dashboard"
	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newPersonaCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "persona",
		Aliases: []string{"bucket"},
		Short:   "Manage personas (account buckets)",
	}

	cmd.AddCommand(
		newPersonaListCmd(app),
		newPersonaCreateCmd(app),
		newPersonaRenameCmd(app),
		newPersonaDeleteCmd(app),
	)

	return cmd
}

func newPersonaListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List personas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.RefreshPersonas(cmd.Context()); err != nil {
				return err
			}

			personas := app.service.Workspace().Personas
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(personas)
			}

			for _, persona := range personas {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s %s\t%s\n",
					persona.ID, dashboard.PersonaTag(persona.Name), persona.Name, persona.Description)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newPersonaCreateCmd(app *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a persona",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.CreatePersona(cmd.Context(), args[0], description); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "persona %q created\n", args[0])
			return err
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Optional persona description")

	return cmd
}

func newPersonaRenameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <persona> <new-name>",
		Short: "Rename a persona",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			persona, err := resolvePersona(cmd, app, args[0])
			if err != nil {
				return err
			}

			if err := app.service.RenamePersona(cmd.Context(), persona.ID, args[1]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "persona %q renamed to %q\n", persona.Name, args[1])
			return err
		},
	}
}

func newPersonaDeleteCmd(app *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <persona>",
		Short: "Delete a persona; its accounts become unassigned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			persona, err := resolvePersona(cmd, app, args[0])
			if err != nil {
				return err
			}

			if persona.Reserved() {
				return domain.ErrReservedPersona
			}

			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete persona %q? Accounts assigned to it will be unassigned.", persona.Name))
				if err != nil {
					return err
				}
				if !ok {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return err
				}
			}

			if err := app.service.DeletePersona(cmd.Context(), persona.ID); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "persona %q deleted\n", persona.Name)
			return err
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
