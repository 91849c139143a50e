package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the identity provider bearer token",
	}

	cmd.AddCommand(newAuthSetTokenCmd(app), newAuthRemoveTokenCmd(app))

	return cmd
}

func newAuthSetTokenCmd(app *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "set-token",
		Short: "Store a bearer token for the backend",
		Long:  "Stores the identity provider bearer token in the token file. The " + tokenEnvKey + " environment variable, when set, takes precedence on every call.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.fileTokens.Write(cmd.Context(), token); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "token stored")
			return err
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Bearer token issued by the identity provider")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func newAuthRemoveTokenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-token",
		Short: "Remove the stored bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.fileTokens.Delete(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "token removed")
			return err
		},
	}
}
