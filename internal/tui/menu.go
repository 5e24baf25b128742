package tui

import (
	"fmt"
	"path/filepath"

	"github.com/Xantino1997/flores/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type MenuModel struct {
	session *roster.Session
	choices []string
	cursor  int
	width   int
	height  int
}

func NewMenuModel(session *roster.Session) *MenuModel {
	return &MenuModel{
		session: session,
		choices: []string{
			"📂 Abrir lista de publicadores",
			"👥 Ver grupos",
			"✏️  Editar publicador",
			"💾 Exportar",
			"🚪 Salir",
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *MenuModel) Capturing() bool {
	return false
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m, m.handleSelection()
		}
	}
	return m, nil
}

func (m *MenuModel) handleSelection() tea.Cmd {
	switch m.cursor {
	case 0:
		return ChangeScreen(OpenScreen)
	case 1:
		return ChangeScreen(BrowseScreen)
	case 2:
		return ChangeScreen(EditScreen)
	case 3:
		return ChangeScreen(ExportScreen)
	case 4:
		return tea.Quit
	}
	return nil
}

func (m *MenuModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📋 Publicadores")

	status := warningStyle.Render("Sin lista cargada")
	if m.session.Loaded() {
		meta := m.session.Metadata()
		source := m.session.Source()
		if source != "" {
			source = filepath.Base(source)
		}
		status = successStyle.Render(fmt.Sprintf("%s · %d publicadores · %s", source, m.session.Len(), meta.Date))
	}

	var menu string
	for i, choice := range m.choices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
			choice = selectedMenuItemStyle.Render(choice)
		} else {
			choice = menuItemStyle.Render(choice)
		}
		menu += fmt.Sprintf("%s %s\n", cursor, choice)
	}

	help := adaptiveHelpStyle.Render("↑/↓ (j/k): Navegar • Enter: Elegir • q: Salir")

	content := lipgloss.JoinVertical(lipgloss.Center, title, status, menu, help)

	if m.width > 0 {
		content = lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			content,
		)
	}

	return content
}
