package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chimera",
		Short:         "Chimera: discover and organize your online accounts into personas",
		Long:          "chimera is a terminal client for the Chimera account directory. It discovers accounts across 300+ platforms, groups them into personas (buckets), and drives AI-backed summary and persona-split operations from the command line.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newAuthCmd(app),
		newPingCmd(app),
		newWhoamiCmd(app),
		newSessionCmd(app),
		newPersonaCmd(app),
		newAccountCmd(app),
		newSearchCmd(app),
		newSummaryCmd(app),
		newSplitCmd(app),
		newOverviewCmd(app),
		newDashboardCmd(app),
	)

	return rootCmd
}
