package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Xantino1997/flores/internal/labels"
	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/roster"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var fieldCaptions = map[models.PublisherField]string{
	models.FieldID:          "Id",
	models.FieldFirstName:   "Nombre",
	models.FieldLastName:    "Apellido",
	models.FieldAddress:     "Dirección",
	models.FieldPhone:       "Teléfono",
	models.FieldPhone2:      "Teléfono 2",
	models.FieldPhone3:      "Teléfono 3",
	models.FieldGender:      "Género",
	models.FieldBirthDate:   "Nacimiento",
	models.FieldBaptismDate: "Bautismo",
	models.FieldGroup:       "Grupo",
	models.FieldGroupRole:   "Asignación",
	models.FieldStatus:      "Estado",
	models.FieldPioneer:     "Precursor",
}

var monthCaptions = map[models.MonthField]string{
	models.MonthPlacements:   "Publicaciones",
	models.MonthVideos:       "Videos",
	models.MonthHours:        "Horas",
	models.MonthReturnVisits: "Revisitas",
	models.MonthBibleStudies: "Estudios",
	models.MonthRemark:       "Observación",
	models.MonthPioneer:      "Precursor",
}

// EditModel edits a draft copy of the selected publisher. Nothing reaches
// the session until the draft is saved.
type EditModel struct {
	session     *roster.Session
	original    models.PublisherRecord
	draft       models.PublisherRecord
	fieldInputs []textinput.Model
	monthInputs []textinput.Model
	monthIdx    int
	focused     int
	width       int
	height      int
}

func NewEditModel(session *roster.Session) *EditModel {
	m := &EditModel{session: session}
	for range models.PublisherFields {
		m.fieldInputs = append(m.fieldInputs, newEditInput())
	}
	for range models.MonthFields {
		m.monthInputs = append(m.monthInputs, newEditInput())
	}
	return m
}

func newEditInput() textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 256
	return in
}

func (m *EditModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *EditModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *EditModel) Capturing() bool {
	return true
}

// Begin loads the selected publisher into the form.
func (m *EditModel) Begin() error {
	p, _, ok := m.session.Selected()
	if !ok {
		return errors.New("no hay publicador seleccionado")
	}
	m.original = p.Clone()
	m.draft = p.Clone()
	for i, f := range models.PublisherFields {
		m.fieldInputs[i].SetValue(*m.draft.Field(f))
		m.fieldInputs[i].CursorEnd()
	}
	m.monthIdx = 0
	m.loadMonth()
	m.focused = 0
	m.updateInputFocus()
	return nil
}

func (m *EditModel) loadMonth() {
	for i, f := range models.MonthFields {
		value := ""
		if m.monthIdx < len(m.draft.Months) {
			value = *m.draft.Months[m.monthIdx].Field(f)
		}
		m.monthInputs[i].SetValue(value)
		m.monthInputs[i].CursorEnd()
	}
}

// syncDraft copies the inputs into the draft record.
func (m *EditModel) syncDraft() {
	for i, f := range models.PublisherFields {
		*m.draft.Field(f) = m.fieldInputs[i].Value()
	}
	if m.monthIdx < len(m.draft.Months) {
		for i, f := range models.MonthFields {
			*m.draft.Months[m.monthIdx].Field(f) = m.monthInputs[i].Value()
		}
	}
}

func (m *EditModel) inputCount() int {
	n := len(m.fieldInputs)
	if len(m.draft.Months) > 0 {
		n += len(m.monthInputs)
	}
	return n
}

func (m *EditModel) input(i int) *textinput.Model {
	if i < len(m.fieldInputs) {
		return &m.fieldInputs[i]
	}
	return &m.monthInputs[i-len(m.fieldInputs)]
}

func (m *EditModel) updateInputFocus() {
	for i := range m.fieldInputs {
		m.fieldInputs[i].Blur()
	}
	for i := range m.monthInputs {
		m.monthInputs[i].Blur()
	}
	m.input(m.focused).Focus()
}

func (m *EditModel) fieldInput(f models.PublisherField) *textinput.Model {
	for i, pf := range models.PublisherFields {
		if pf == f {
			return &m.fieldInputs[i]
		}
	}
	return nil
}

func (m *EditModel) toggleRole(l labels.Label) {
	in := m.fieldInput(models.FieldGroupRole)
	role := in.Value()
	if labels.Has(models.PublisherRecord{GroupRole: role}, l) {
		in.SetValue(labels.RemoveRoleToken(role, l))
	} else {
		in.SetValue(labels.AddRoleToken(role, l))
	}
}

func (m *EditModel) togglePioneer() {
	in := m.fieldInput(models.FieldPioneer)
	in.SetValue(labels.SetRegularPioneer(in.Value(), !labels.IsRegularPioneer(in.Value())))
}

func (m *EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, ChangeScreen(BrowseScreen)
	case "tab", "down":
		m.focused = (m.focused + 1) % m.inputCount()
		m.updateInputFocus()
		return m, nil
	case "shift+tab", "up":
		m.focused = (m.focused - 1 + m.inputCount()) % m.inputCount()
		m.updateInputFocus()
		return m, nil
	case "pgdown", "pgup":
		m.switchMonth(keyMsg.String() == "pgdown")
		return m, nil
	case "ctrl+t":
		m.toggleRole(labels.GroupSuperintendent)
		return m, nil
	case "ctrl+a":
		m.toggleRole(labels.GroupAssistant)
		return m, nil
	case "ctrl+r":
		m.togglePioneer()
		return m, nil
	case "enter", "ctrl+s":
		if err := m.Save(); err != nil {
			return m, ShowError(err)
		}
		return m, ChangeScreen(BrowseScreen)
	}

	var cmd tea.Cmd
	in := m.input(m.focused)
	*in, cmd = in.Update(keyMsg)
	return m, cmd
}

func (m *EditModel) switchMonth(forward bool) {
	n := len(m.draft.Months)
	if n == 0 {
		return
	}
	m.syncDraft()
	if forward {
		m.monthIdx = (m.monthIdx + 1) % n
	} else {
		m.monthIdx = (m.monthIdx - 1 + n) % n
	}
	m.loadMonth()
}

// Save applies every changed field of the draft to the session. Month
// edits go first, then scalar fields, then the group and finally the id,
// so that each step can still find the record by its original id.
func (m *EditModel) Save() error {
	m.syncDraft()
	id := m.original.ID

	for i := range m.draft.Months {
		for _, f := range models.MonthFields {
			before := *m.original.Months[i].Field(f)
			after := *m.draft.Months[i].Field(f)
			if before == after {
				continue
			}
			if err := m.session.SetMonthField(id, i, f, after); err != nil {
				return fmt.Errorf("failed to update month %s: %w", f, err)
			}
		}
	}

	deferred := []models.PublisherField{models.FieldGroup, models.FieldID}
	apply := func(f models.PublisherField) error {
		before := *m.original.Field(f)
		after := *m.draft.Field(f)
		if before == after {
			return nil
		}
		if err := m.session.SetField(id, f, after); err != nil {
			return fmt.Errorf("failed to update %s: %w", f, err)
		}
		return nil
	}
	for _, f := range models.PublisherFields {
		if f == models.FieldGroup || f == models.FieldID {
			continue
		}
		if err := apply(f); err != nil {
			return err
		}
	}
	for _, f := range deferred {
		if err := apply(f); err != nil {
			return err
		}
	}

	m.original = m.draft.Clone()
	return nil
}

func (m *EditModel) View() string {
	title := titleStyle.Render("✏️  " + m.draft.FullName())

	var fields strings.Builder
	for i, f := range models.PublisherFields {
		fmt.Fprintf(&fields, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-11s", fieldCaptions[f])), m.fieldInputs[i].View())
	}

	sections := []string{formStyle.Render(fields.String())}
	if n := len(m.draft.Months); n > 0 {
		mo := m.draft.Months[m.monthIdx]
		var months strings.Builder
		fmt.Fprintf(&months, "%s (%d/%d)\n", labelStyle.Render(models.MonthDisplayName(mo.Month)+" "+mo.Year), m.monthIdx+1, n)
		for i, f := range models.MonthFields {
			fmt.Fprintf(&months, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-13s", monthCaptions[f])), m.monthInputs[i].View())
		}
		sections = append(sections, formStyle.Render(months.String()))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, sections...)

	help := helpStyle.Render("Tab/↑/↓: Campo • PgUp/PgDn: Mes • Ctrl+T: Super • Ctrl+A: Auxiliar • Ctrl+R: Regular • Enter: Guardar • Esc: Cancelar")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}
