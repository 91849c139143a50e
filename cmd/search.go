package cmd

import (
	"context"
	"fmt"

	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSearchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <username>",
		Short: "Search 300+ platforms for accounts under a username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result domain.SearchResult

			search := func(ctx context.Context) error {
				var err error
				result, err = app.service.SearchAccounts(ctx, args[0])
				return err
			}

			if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Searching platforms...", search); err != nil {
				return fmt.Errorf("search failed, please try again: %w", err)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			return err
		},
	}
}
