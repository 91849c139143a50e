package dashboard

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chimera-sh/chimera-cli/internal/application"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type renderModel struct {
	ws     application.Workspace
	opts   RenderOptions
	styles styles
	output string
}

func newRenderModel(ws application.Workspace, opts RenderOptions) renderModel {
	return renderModel{
		ws:     ws,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m renderModel) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m renderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.ws, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m renderModel) View() string {
	return m.output
}

// Render produces a one-shot, non-interactive rendering of the workspace
// snapshot for plain command output.
func Render(ws application.Workspace, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newRenderModel(ws, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(renderModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
