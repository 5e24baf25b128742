package tui

import (
	"fmt"
	"strings"

	"github.com/Xantino1997/flores/internal/labels"
	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/roster"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type BrowseModel struct {
	session    *roster.Session
	groups     []string
	groupIdx   int
	cursor     int
	confirming bool
	detail     viewport.Model
	width      int
	height     int
}

func NewBrowseModel(session *roster.Session) *BrowseModel {
	return &BrowseModel{
		session: session,
		detail:  viewport.New(60, 16),
	}
}

func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

func (m *BrowseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.detail.Width = max(width/2, 30)
	m.detail.Height = max(height-10, 8)
	m.updateDetail()
}

func (m *BrowseModel) Capturing() bool {
	return m.confirming
}

// Refresh rebuilds the group list and cursor from the session selection.
func (m *BrowseModel) Refresh() {
	m.groups = m.session.Groups()
	if roster.InactiveCount(m.session.Publishers()) > 0 {
		m.groups = append(m.groups, roster.InactiveBucket)
	}

	sel := m.session.Selection()
	m.groupIdx = -1
	for i, g := range m.groups {
		if g == sel.Group {
			m.groupIdx = i
			break
		}
	}
	if m.groupIdx < 0 && len(m.groups) > 0 {
		m.groupIdx = 0
		m.session.SelectGroup(m.groups[0])
	}

	m.cursor = -1
	bucket := m.session.CurrentBucket()
	for i, p := range bucket {
		if p.ID == m.session.Selection().PublisherID {
			m.cursor = i
			break
		}
	}
	if m.cursor < 0 {
		m.cursor = 0
		if len(bucket) > 0 {
			_ = m.session.Select(bucket[0].ID)
		}
	}
	m.updateDetail()
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.confirming {
		return m.updateConfirm(keyMsg)
	}

	bucket := m.session.CurrentBucket()
	switch keyMsg.String() {
	case "left", "h", "shift+tab":
		m.moveGroup(-1)
	case "right", "l", "tab":
		m.moveGroup(1)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.selectCursor(bucket)
		}
	case "down", "j":
		if m.cursor < len(bucket)-1 {
			m.cursor++
			m.selectCursor(bucket)
		}
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	case "e", "enter":
		if len(bucket) > 0 {
			return m, ChangeScreen(EditScreen)
		}
	case "x":
		return m, ChangeScreen(ExportScreen)
	case "d", "delete":
		if len(bucket) > 0 {
			m.confirming = true
		}
	}
	return m, nil
}

func (m *BrowseModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		p, _, ok := m.session.Selected()
		if !ok {
			return m, nil
		}
		if err := m.session.Remove(p.ID); err != nil {
			return m, ShowError(err)
		}
		m.Refresh()
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m *BrowseModel) moveGroup(delta int) {
	if len(m.groups) == 0 {
		return
	}
	m.groupIdx = (m.groupIdx + delta + len(m.groups)) % len(m.groups)
	m.session.SelectGroup(m.groups[m.groupIdx])
	m.cursor = 0
	m.updateDetail()
}

func (m *BrowseModel) selectCursor(bucket []models.PublisherRecord) {
	if m.cursor < len(bucket) {
		_ = m.session.Select(bucket[m.cursor].ID)
	}
	m.updateDetail()
}

func (m *BrowseModel) updateDetail() {
	p, _, ok := m.session.Selected()
	if !ok {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(renderDetail(p))
	m.detail.GotoTop()
}

func groupTitle(group string) string {
	switch group {
	case roster.InactiveBucket:
		return "Inactivos"
	case "":
		return "Sin grupo"
	}
	return "Grupo " + group
}

func renderLabels(p models.PublisherRecord) string {
	var parts []string
	for _, l := range labels.Of(p) {
		style := badgeStyle
		if l.IsStatus() {
			style = statusBadgeStyle
		}
		parts = append(parts, style.Render(l.String()))
	}
	return strings.Join(parts, " ")
}

func renderDetail(p models.PublisherRecord) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(p.FullName()))
	b.WriteString("\n")
	if badges := renderLabels(p); badges != "" {
		b.WriteString(badges + "\n")
	}
	b.WriteString("\n")

	rows := [][2]string{
		{"Id", p.ID},
		{"Dirección", p.Address},
		{"Teléfono", p.ContactPhone()},
		{"Teléfono 3", p.Phone3},
		{"Género", models.GenderDisplay(p.Gender)},
		{"Nacimiento", p.BirthDate},
		{"Bautismo", p.BaptismDate},
		{"Grupo", p.Group},
		{"Asignación", p.GroupRole},
		{"Estado", p.Status},
		{"Precursor", p.Pioneer},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-11s %s\n", r[0]+":", r[1])
	}

	if len(p.Months) > 0 {
		b.WriteString("\n" + labelStyle.Render("Informes") + "\n")
		for _, mo := range p.Months {
			fmt.Fprintf(&b, "%s %s  Hrs %s  Rev %s  Est %s  Pub %s  Vid %s",
				models.MonthDisplayName(mo.Month), mo.Year,
				mo.Hours, mo.ReturnVisits, mo.BibleStudies, mo.Placements, mo.Videos)
			if mo.Pioneer != "" {
				fmt.Fprintf(&b, "  Pio %s", mo.Pioneer)
			}
			if mo.Remark != "" {
				fmt.Fprintf(&b, "  (%s)", mo.Remark)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *BrowseModel) View() string {
	title := titleStyle.Render("👥 Grupos")

	if len(m.groups) == 0 {
		content := warningStyle.Render("La lista no tiene publicadores")
		help := helpStyle.Render("Esc: Menú")
		return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
	}

	counts := roster.GroupCounts(m.session.Publishers())
	var tabs []string
	for i, g := range m.groups {
		n := counts[g]
		if g == roster.InactiveBucket {
			n = roster.InactiveCount(m.session.Publishers())
		}
		label := fmt.Sprintf("%s (%d)", groupTitle(g), n)
		if i == m.groupIdx {
			tabs = append(tabs, activeGroupTabStyle.Render(label))
		} else {
			tabs = append(tabs, groupTabStyle.Render(label))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var list strings.Builder
	for i, p := range m.session.CurrentBucket() {
		cursor := " "
		name := p.FullName()
		if i == m.cursor {
			cursor = ">"
			name = selectedMenuItemStyle.Render(name)
		} else {
			name = menuItemStyle.Render(name)
		}
		fmt.Fprintf(&list, "%s %s %s\n", cursor, name, renderLabels(p))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		list.String(),
		formStyle.Render(m.detail.View()),
	)

	help := helpStyle.Render("←/→: Grupo • ↑/↓: Publicador • PgUp/PgDn: Detalle • e: Editar • d: Eliminar • x: Exportar • Esc: Menú")
	if m.confirming {
		p, _, _ := m.session.Selected()
		help = warningStyle.Render(fmt.Sprintf("¿Eliminar a %s? (y/n)", p.FullName()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, tabBar, body, help)
}
