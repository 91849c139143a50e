package dashboard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chimera-sh/chimera-cli/internal/application"
	"github.com/chimera-sh/chimera-cli/internal/ports"
)

type loadDoneMsg struct{}

type opDoneMsg struct {
	label string
	err   error
}

// Model is the interactive dashboard. It reads from the reconciliation
// service and dispatches intents; the service owns all state. Only one
// operation runs at a time, so the service still sees a serial caller.
type Model struct {
	ctx     context.Context
	service *application.Service
	clock   ports.Clock

	ws      application.Workspace
	styles  styles
	spinner spinner.Model

	cursor int
	busy   bool
	label  string
	status string
	loaded bool
}

func NewModel(ctx context.Context, service *application.Service, clock ports.Clock) Model {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	// busy starts true: the Init-spawned load runs on another goroutine,
	// and the service must not be touched until loadDoneMsg arrives.
	return Model{
		ctx:     ctx,
		service: service,
		clock:   clock,
		ws:      service.Workspace(),
		styles:  newStyles(),
		spinner: s,
		busy:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadDoneMsg:
		m.ws = m.service.Workspace()
		m.busy = false
		m.loaded = true
		m.clampCursor()
		return m, nil

	case opDoneMsg:
		m.ws = m.service.Workspace()
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.label, msg.err)
		} else {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.busy {
			return m, nil
		}
		m.cursor--
		m.clampCursor()
		m.applySelection()
		return m, nil

	case "down", "j":
		if m.busy {
			return m, nil
		}
		m.cursor++
		m.clampCursor()
		m.applySelection()
		return m, nil

	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.label = "Reloading..."
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())

	case "s":
		if m.busy {
			return m, nil
		}
		if m.ws.Stats().VisibleAccounts == 0 {
			m.status = "summary unavailable: no accounts in the selected scope"
			return m, nil
		}
		m.busy = true
		m.label = "Generating summary..."
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			_, err := m.service.GenerateSummary(m.ctx)
			return opDoneMsg{label: "generate summary", err: err}
		})

	default:
		return m, nil
	}
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		m.service.LoadAll(m.ctx)
		return loadDoneMsg{}
	}
}

// applySelection maps the cursor (0 = All Accounts, then personas in list
// order) onto the model's selection. Selection changes clear any
// persona-scoped summary or split result.
func (m *Model) applySelection() {
	if m.cursor == 0 {
		m.service.SelectPersona(nil)
	} else {
		id := m.ws.Personas[m.cursor-1].ID
		m.service.SelectPersona(&id)
	}

	m.ws = m.service.Workspace()
}

func (m *Model) clampCursor() {
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.ws.Personas) {
		m.cursor = len(m.ws.Personas)
	}
}

func (m Model) View() string {
	if !m.loaded {
		return fmt.Sprintf("%s Loading dashboard...", m.spinner.View())
	}

	view := renderView(m.ws, RenderOptions{Now: m.clock.Now()}, m.styles)

	if m.busy {
		view += "\n\n" + fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	}
	if m.status != "" {
		view += "\n\n" + m.styles.warning.Render(m.status)
	}

	view += "\n\n" + m.styles.meta.Render("↑/↓ select persona · r reload · s summary · q quit")
	return view
}

// Run starts the interactive dashboard and blocks until it quits.
func Run(ctx context.Context, service *application.Service, clock ports.Clock) error {
	p := tea.NewProgram(NewModel(ctx, service, clock), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
