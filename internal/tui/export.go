package tui

import (
	"fmt"
	"strings"

	"github.com/Xantino1997/flores/internal/export"
	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/roster"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ExportState int

const (
	ExportInputState ExportState = iota
	ExportProgressState
	ExportResultState
)

const (
	exportRoster = iota
	exportCurrentSheet
	exportAllSheets
)

type ExportResult struct {
	Files []string
	Error error
}

type ExportCompleteMsg struct {
	Result ExportResult
}

type ExportModel struct {
	session   *roster.Session
	exporter  *export.Service
	state     ExportState
	dirInput  textinput.Model
	choices   []string
	choice    int
	recompute bool
	result    ExportResult
	width     int
	height    int
}

func NewExportModel(session *roster.Session, exporter *export.Service, outputDir string) *ExportModel {
	dirInput := textinput.New()
	dirInput.Placeholder = "."
	dirInput.SetValue(outputDir)
	dirInput.Focus()

	return &ExportModel{
		session:  session,
		exporter: exporter,
		state:    ExportInputState,
		dirInput: dirInput,
		choices: []string{
			"Lista completa (XML)",
			"Hoja del grupo actual (CSV)",
			"Hojas de todos los grupos (CSV)",
		},
		recompute: exporter.RecomputesCount(),
	}
}

func (m *ExportModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ExportModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ExportModel) Capturing() bool {
	return m.state != ExportResultState
}

// Begin resets the screen for a new export.
func (m *ExportModel) Begin() {
	m.state = ExportInputState
	m.result = ExportResult{}
	m.dirInput.Focus()
}

func (m *ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case ExportInputState:
			return m.updateInputState(msg)
		case ExportProgressState:
			return m, nil
		case ExportResultState:
			if msg.String() == "enter" || msg.String() == " " {
				m.Begin()
				return m, ChangeScreen(BrowseScreen)
			}
		}

	case ExportCompleteMsg:
		m.result = msg.Result
		m.state = ExportResultState
		return m, nil
	}
	return m, nil
}

func (m *ExportModel) updateInputState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, ChangeScreen(BrowseScreen)
	case "up":
		if m.choice > 0 {
			m.choice--
		}
		return m, nil
	case "down":
		if m.choice < len(m.choices)-1 {
			m.choice++
		}
		return m, nil
	case "ctrl+r":
		m.recompute = !m.recompute
		return m, nil
	case "enter":
		m.state = ExportProgressState
		return m, m.performExport()
	}

	var cmd tea.Cmd
	m.dirInput, cmd = m.dirInput.Update(msg)
	return m, cmd
}

type sheetJob struct {
	group string
	rows  []models.PublisherRecord
}

// performExport snapshots the session before leaving the update loop;
// collections are never mutated in place, so the snapshot stays valid.
func (m *ExportModel) performExport() tea.Cmd {
	dir := strings.TrimSpace(m.dirInput.Value())
	if dir == "" {
		dir = "."
	}
	svc := m.exporter.With(export.WithRecomputedCount(m.recompute))
	meta := m.session.Metadata()
	pubs := m.session.Publishers()

	var sheets []sheetJob
	switch m.choice {
	case exportCurrentSheet:
		g := m.session.Selection().Group
		sheets = append(sheets, sheetJob{group: g, rows: m.session.Sheet(g)})
	case exportAllSheets:
		groups := m.session.Groups()
		if roster.InactiveCount(pubs) > 0 {
			groups = append(groups, roster.InactiveBucket)
		}
		for _, g := range groups {
			sheets = append(sheets, sheetJob{group: g, rows: m.session.Sheet(g)})
		}
	}
	choice := m.choice

	return func() tea.Msg {
		var result ExportResult
		if choice == exportRoster {
			path, err := svc.ExportRoster(meta, pubs, dir)
			if err != nil {
				result.Error = err
				return ExportCompleteMsg{Result: result}
			}
			result.Files = append(result.Files, path)
		}
		for _, job := range sheets {
			path, err := svc.WriteGroupSheet(job.rows, job.group, dir)
			if err != nil {
				result.Error = err
				return ExportCompleteMsg{Result: result}
			}
			result.Files = append(result.Files, path)
		}
		return ExportCompleteMsg{Result: result}
	}
}

func (m *ExportModel) View() string {
	switch m.state {
	case ExportProgressState:
		return titleStyle.Render("💾 Exportando...")
	case ExportResultState:
		return m.renderResult()
	}
	return m.renderInputForm()
}

func (m *ExportModel) renderInputForm() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("💾 Exportar")

	var choices string
	for i, c := range m.choices {
		cursor := " "
		style := menuItemStyle
		if i == m.choice {
			cursor = ">"
			style = selectedMenuItemStyle
		}
		choices += fmt.Sprintf("%s %s\n", cursor, style.Render(c))
	}

	count := errorStyle.Render("✗ NO")
	if m.recompute {
		count = successStyle.Render("✓ SÍ")
	}

	form := adaptiveFormStyle.Render(
		labelStyle.Render("Directorio:") + "\n" + m.dirInput.View() + "\n\n" +
			labelStyle.Render("Qué exportar:") + "\n" + choices + "\n" +
			"Recalcular Count: " + count,
	)

	help := adaptiveHelpStyle.Render("↑/↓: Opción • Ctrl+R: Recalcular Count • Enter: Exportar • Esc: Volver")

	return lipgloss.JoinVertical(lipgloss.Left, title, form, help)
}

func (m *ExportModel) renderResult() string {
	title := titleStyle.Render("💾 Exportación")

	if m.result.Error != nil {
		status := errorStyle.Render(fmt.Sprintf("❌ Falló la exportación: %v", m.result.Error))
		help := helpStyle.Render("Enter: Volver")
		return lipgloss.JoinVertical(lipgloss.Left, title, status, help)
	}

	status := successStyle.Render(fmt.Sprintf("✅ %d archivo(s) creados:", len(m.result.Files)))
	var files string
	for _, f := range m.result.Files {
		files += "   - " + f + "\n"
	}
	help := helpStyle.Render("Enter: Volver")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, files, help)
}
