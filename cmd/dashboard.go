package cmd

import (
	"github.com/chimera-sh/chimera-cli/internal/adapters/render/dashboard"
	"github.com/chimera-sh/chimera-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dashboard.Run(cmd.Context(), app.service, ports.SystemClock{})
		},
	}
}
