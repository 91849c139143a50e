package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect and reassign discovered accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
		newAccountAssignCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	var personaRef string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered accounts, optionally scoped to one persona",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := resolveScope(cmd, app, personaRef)
			if err != nil {
				return err
			}
			app.service.SelectPersona(scope)

			if err := app.service.RefreshAccounts(cmd.Context()); err != nil {
				return err
			}

			ws := app.service.Workspace()
			visible := ws.VisibleAccounts()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(visible)
			}

			if len(visible) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No accounts found")
				return err
			}

			for _, account := range visible {
				assignment := domain.ReservedPersonaName
				if account.Bucket != nil {
					assignment = account.Bucket.Name
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					account.ID, account.Platform, account.AccountName, assignment)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&personaRef, "persona", "", "Persona id or name to scope the list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newAccountAssignCmd(app *app) *cobra.Command {
	var personaRef string
	var unassign bool

	cmd := &cobra.Command{
		Use:   "assign <account-id>",
		Short: "Move an account into a persona, or unassign it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if unassign == (personaRef != "") {
				return errors.New("exactly one of --persona or --unassign is required")
			}

			var target *domain.PersonaID
			label := domain.ReservedPersonaName
			if !unassign {
				persona, err := resolvePersona(cmd, app, personaRef)
				if err != nil {
					return err
				}
				id := persona.ID
				target = &id
				label = persona.Name
			}

			if err := app.service.ReassignAccount(cmd.Context(), domain.AccountID(args[0]), target); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "account %s assigned to %s\n", args[0], label)
			return err
		},
	}

	cmd.Flags().StringVar(&personaRef, "persona", "", "Persona id or name to assign the account to")
	cmd.Flags().BoolVar(&unassign, "unassign", false, "Clear the account's persona")

	return cmd
}
