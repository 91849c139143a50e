package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/chimera-sh/chimera-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *app) *cobra.Command {
	var personaRef string
	var plain bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Generate an AI summary of all accounts or one persona",
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

			var summary domain.SummaryResult
			generate := func(ctx context.Context) error {
				var err error
				summary, err = app.service.GenerateSummary(ctx)
				return err
			}

			if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Generating summary...", generate); err != nil {
				return err
			}

			output := summary.Markdown
			if !plain {
				output = renderMarkdown(output)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().StringVar(&personaRef, "persona", "", "Persona id or name to scope the summary (default: all accounts)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw markdown without terminal styling")

	return cmd
}

// renderMarkdown styles the backend's markdown for the terminal, falling
// back to the raw text when rendering fails.
func renderMarkdown(markdown string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = markdown
		}
	}()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return rendered
}
