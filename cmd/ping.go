package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Probe the backend health endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.client.Health(cmd.Context()); err != nil {
				return fmt.Errorf("backend unreachable: %w", err)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "backend is up")
			return err
		},
	}
}
