package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Xantino1997/flores/internal/export"
	"github.com/Xantino1997/flores/internal/roster"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type OpenState int

const (
	OpenInputState OpenState = iota
	OpenFileSelectState
	OpenResultState
)

// OpenResult is the post-load summary.
type OpenResult struct {
	Path       string
	Publishers int
	Groups     int
	FirstGroup string
	FirstName  string
	Error      error
}

// OpenFileMsg asks the open screen to load Path.
type OpenFileMsg struct {
	Path string
}

type OpenModel struct {
	session      *roster.Session
	state        OpenState
	pathInput    textinput.Model
	files        []string
	selectedFile int
	result       OpenResult
	width        int
	height       int
}

func NewOpenModel(session *roster.Session, initialFile string) *OpenModel {
	pathInput := textinput.New()
	pathInput.Placeholder = "publicadores.xml"
	pathInput.SetValue(initialFile)
	pathInput.Focus()

	return &OpenModel{
		session:   session,
		state:     OpenInputState,
		pathInput: pathInput,
	}
}

func (m *OpenModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *OpenModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *OpenModel) Capturing() bool {
	return m.state != OpenResultState
}

// Open returns a command that loads path through the open screen.
func (m *OpenModel) Open(path string) tea.Cmd {
	return func() tea.Msg {
		return OpenFileMsg{Path: path}
	}
}

func (m *OpenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenFileMsg:
		m.pathInput.SetValue(msg.Path)
		m.load(msg.Path)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case OpenInputState:
			return m.updateInputState(msg)
		case OpenFileSelectState:
			return m.updateFileSelectState(msg)
		case OpenResultState:
			if msg.String() == "enter" || msg.String() == " " {
				failed := m.result.Error != nil
				m.reset()
				if !failed {
					return m, ChangeScreen(BrowseScreen)
				}
			}
		}
	}
	return m, nil
}

func (m *OpenModel) updateInputState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, ChangeScreen(MenuScreen)
	case "ctrl+f":
		return m.browseFiles()
	case "enter":
		if path := strings.TrimSpace(m.pathInput.Value()); path != "" {
			m.load(path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *OpenModel) updateFileSelectState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedFile > 0 {
			m.selectedFile--
		}
	case "down", "j":
		if m.selectedFile < len(m.files)-1 {
			m.selectedFile++
		}
	case "enter":
		if len(m.files) > 0 {
			m.pathInput.SetValue(m.files[m.selectedFile])
			m.pathInput.CursorEnd()
			m.state = OpenInputState
		}
	case "esc":
		m.state = OpenInputState
	}
	return m, nil
}

func (m *OpenModel) browseFiles() (tea.Model, tea.Cmd) {
	cwd, err := os.Getwd()
	if err != nil {
		return m, ShowError(err)
	}
	files, err := filepath.Glob(filepath.Join(cwd, "*.xml"))
	if err != nil {
		return m, ShowError(err)
	}

	for i, file := range files {
		if rel, err := filepath.Rel(cwd, file); err == nil {
			files[i] = rel
		}
	}

	m.files = files
	m.selectedFile = 0
	m.state = OpenFileSelectState
	return m, nil
}

// load replaces the session roster. A failed load keeps whatever the
// session held before.
func (m *OpenModel) load(path string) {
	m.state = OpenResultState
	m.result = OpenResult{Path: path}

	if err := export.ValidateInputFile(path); err != nil {
		m.result.Error = err
		return
	}
	if err := m.session.LoadFile(path); err != nil {
		m.result.Error = err
		return
	}

	m.result.Publishers = m.session.Len()
	m.result.Groups = len(m.session.Groups())
	if p, _, ok := m.session.Selected(); ok {
		m.result.FirstGroup = p.Group
		m.result.FirstName = p.FullName()
	}
}

func (m *OpenModel) reset() {
	m.state = OpenInputState
	m.result = OpenResult{}
	m.pathInput.Focus()
}

// Result returns the summary of the last load attempt.
func (m *OpenModel) Result() OpenResult {
	return m.result
}

func (m *OpenModel) View() string {
	switch m.state {
	case OpenFileSelectState:
		return m.renderFileSelector()
	case OpenResultState:
		return m.renderResult()
	}
	return m.renderInputForm()
}

func (m *OpenModel) renderInputForm() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📂 Abrir lista de publicadores")
	form := adaptiveFormStyle.Render(labelStyle.Render("Archivo XML:") + "\n" + m.pathInput.View())
	help := adaptiveHelpStyle.Render("Ctrl+F: Buscar archivos • Enter: Abrir • Esc: Menú")

	return lipgloss.JoinVertical(lipgloss.Left, title, form, help)
}

func (m *OpenModel) renderFileSelector() string {
	title := titleStyle.Render("📁 Elegir archivo")

	if len(m.files) == 0 {
		content := warningStyle.Render("No hay archivos *.xml en el directorio actual")
		help := helpStyle.Render("Esc: Volver")
		return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
	}

	var fileList string
	for i, file := range m.files {
		cursor := " "
		style := menuItemStyle
		if i == m.selectedFile {
			cursor = ">"
			style = selectedMenuItemStyle
		}
		fileList += fmt.Sprintf("%s %s\n", cursor, style.Render(file))
	}

	help := helpStyle.Render("↑/↓: Navegar • Enter: Elegir • Esc: Cancelar")

	return lipgloss.JoinVertical(lipgloss.Left, title, fileList, help)
}

func (m *OpenModel) renderResult() string {
	title := titleStyle.Render("📂 " + m.result.Path)

	if m.result.Error != nil {
		status := errorStyle.Render(fmt.Sprintf("❌ No se pudo cargar: %v", m.result.Error))
		help := helpStyle.Render("Enter: Intentar otro archivo • Esc: Menú")
		return lipgloss.JoinVertical(lipgloss.Left, title, status, help)
	}

	status := successStyle.Render(fmt.Sprintf("✅ %d publicadores cargados", m.result.Publishers))
	stats := fmt.Sprintf(
		"   Grupos: %d\n"+
			"   Primer grupo: %s\n"+
			"   Primer publicador: %s",
		m.result.Groups,
		m.result.FirstGroup,
		m.result.FirstName,
	)
	help := helpStyle.Render("Enter: Ver grupos • Esc: Menú")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, stats, help)
}
