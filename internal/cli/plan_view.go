package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stainprep/stainprep/internal/cli/formatter"
	"github.com/stainprep/stainprep/internal/domain"
)

// defaultExportPath is where the viewer's export key writes the plan.
const defaultExportPath = "prep_plan.csv"

// planViewModel is a scrollable full-screen view of the computed plan.
// Keys: r recompute, e export to CSV, q/esc quit.
type planViewModel struct {
	app    *App
	vp     viewport.Model
	err    error
	status string
	ready  bool
}

func newPlanViewModel(app *App) planViewModel {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return planViewModel{app: app, vp: vp}
}

func (m planViewModel) Init() tea.Cmd {
	return m.rebuild
}

// planBuiltMsg carries the rendered plan (or the build error) into Update.
type planBuiltMsg struct {
	content string
	err     error
}

// planExportedMsg reports the outcome of an export triggered from the viewer.
type planExportedMsg struct {
	path string
	err  error
}

func (m planViewModel) rebuild() tea.Msg {
	plan, err := m.app.Plans.Build(context.Background())
	if err != nil {
		return planBuiltMsg{err: err}
	}
	return planBuiltMsg{content: formatter.FormatPrepPlan(plan)}
}

func (m planViewModel) exportCSV() tea.Msg {
	file, err := os.Create(defaultExportPath)
	if err != nil {
		return planExportedMsg{path: defaultExportPath, err: err}
	}
	_, err = m.app.Exports.Export(context.Background(), domain.ExportCSV, file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(defaultExportPath)
	}
	return planExportedMsg{path: defaultExportPath, err: err}
}

func (m planViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.status = ""
			return m, m.rebuild
		case "e":
			return m, m.exportCSV
		}

	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 2
		m.ready = true

	case planBuiltMsg:
		m.err = msg.err
		if msg.err == nil {
			m.vp.SetContent(msg.content)
			m.vp.GotoTop()
		}

	case planExportedMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(fmt.Sprintf("export failed: %v", msg.err))
		} else {
			m.status = formatter.StyleGreen.Render("exported " + msg.path)
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m planViewModel) View() string {
	if !m.ready {
		return formatter.Dim("loading...")
	}
	if m.err != nil {
		return formatter.StyleRed.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + m.statusBar()
	}
	return m.vp.View() + "\n" + m.statusBar()
}

func (m planViewModel) statusBar() string {
	keys := formatter.Dim("r refresh · e export · q quit")
	parts := keys + "  " + scrollIndicator(m.vp)
	if m.status != "" {
		parts += "  " + m.status
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(parts)
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() && vp.AtBottom() {
		return ""
	}
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[BOT]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}
