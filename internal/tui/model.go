package tui

import (
	"errors"
	"fmt"

	"github.com/Xantino1997/flores/internal/export"
	"github.com/Xantino1997/flores/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type Screen int

const (
	MenuScreen Screen = iota
	OpenScreen
	BrowseScreen
	EditScreen
	ExportScreen
)

// Options configures a Model. Zero values fall back to a fresh session,
// a no-op logger and the current directory.
type Options struct {
	Session     *roster.Session
	Exporter    *export.Service
	Logger      *zap.Logger
	OutputDir   string
	InitialFile string
}

type subModel interface {
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
	SetSize(width, height int)
	// Capturing reports whether keys must reach the screen untouched,
	// for example while a text input has focus.
	Capturing() bool
}

type Model struct {
	currentScreen Screen
	session       *roster.Session
	logger        *zap.Logger
	initialFile   string

	menuModel   *MenuModel
	openModel   *OpenModel
	browseModel *BrowseModel
	editModel   *EditModel
	exportModel *ExportModel

	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Session == nil {
		opts.Session = roster.NewSession(roster.WithLogger(opts.Logger))
	}
	if opts.Exporter == nil {
		opts.Exporter = export.NewService(export.WithLogger(opts.Logger))
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	return Model{
		currentScreen: MenuScreen,
		session:       opts.Session,
		logger:        opts.Logger,
		initialFile:   opts.InitialFile,
		menuModel:     NewMenuModel(opts.Session),
		openModel:     NewOpenModel(opts.Session, opts.InitialFile),
		browseModel:   NewBrowseModel(opts.Session),
		editModel:     NewEditModel(opts.Session),
		exportModel:   NewExportModel(opts.Session, opts.Exporter, opts.OutputDir),
	}
}

func (m Model) Init() tea.Cmd {
	if m.initialFile != "" {
		return m.openModel.Open(m.initialFile)
	}
	return nil
}

func (m Model) screen(s Screen) subModel {
	switch s {
	case OpenScreen:
		return m.openModel
	case BrowseScreen:
		return m.browseModel
	case EditScreen:
		return m.editModel
	case ExportScreen:
		return m.exportModel
	}
	return m.menuModel
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, s := range []Screen{MenuScreen, OpenScreen, BrowseScreen, EditScreen, ExportScreen} {
			m.screen(s).SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.screen(m.currentScreen).Capturing() {
			switch msg.String() {
			case "q":
				m.quitting = true
				return m, tea.Quit
			case "esc":
				if m.currentScreen != MenuScreen {
					m.currentScreen = MenuScreen
					m.err = nil
					return m, nil
				}
			}
		}

	case ScreenChangeMsg:
		return m.changeScreen(msg.Screen)

	case OpenFileMsg:
		m.currentScreen = OpenScreen
		_, cmd := m.openModel.Update(msg)
		return m, cmd

	case ErrorMsg:
		m.err = msg.Err
		if msg.Err != nil {
			m.logger.Debug("screen reported error", zap.Error(msg.Err))
		}
		return m, nil
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
	}
	_, cmd := m.screen(m.currentScreen).Update(msg)
	return m, cmd
}

func (m Model) changeScreen(s Screen) (tea.Model, tea.Cmd) {
	if s != MenuScreen && s != OpenScreen && !m.session.Loaded() {
		m.err = errors.New("primero abra una lista de publicadores")
		return m, nil
	}
	m.err = nil
	m.currentScreen = s

	switch s {
	case BrowseScreen:
		m.browseModel.Refresh()
	case EditScreen:
		if err := m.editModel.Begin(); err != nil {
			m.currentScreen = BrowseScreen
			m.err = err
		}
	case ExportScreen:
		m.exportModel.Begin()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "Hasta luego.\n"
	}

	content := m.screen(m.currentScreen).View()
	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Margin(1, 0)
		content += errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return content
}

// CurrentScreen reports the screen on display.
func (m Model) CurrentScreen() Screen {
	return m.currentScreen
}

type ScreenChangeMsg struct {
	Screen Screen
}

type ErrorMsg struct {
	Err error
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
