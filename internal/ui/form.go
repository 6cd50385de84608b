package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"medremind/internal/reminder"
)

const (
	fieldPatientID = iota
	fieldName
	fieldCategory
	fieldTargetDate
	fieldRemarks
	fieldCount
)

var fieldKeys = [fieldCount]string{"patientId", "name", "category", "targetDate", "remarks"}

var fieldLabels = [fieldCount]string{"Patient ID", "Name", "Category (first/long)", "Target date (YYYY-MM-DD)", "Remarks"}

// form is the registration editor. Enter advances and submits on the last
// field.
type form struct {
	inputs [fieldCount]textinput.Model
	index  int
	errs   reminder.ValidationError
}

func newForm() *form {
	f := &form{}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = 256
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.inputs[fieldPatientID].CharLimit = 7
	f.inputs[fieldPatientID].Validate = digitsOnly
	f.inputs[fieldCategory].SetValue(string(reminder.CategoryFirst))
	f.inputs[fieldTargetDate].CharLimit = len(reminder.DateLayout)
	f.inputs[fieldPatientID].Focus()
	return f
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return errors.New("digits only")
		}
	}
	return nil
}

func (f *form) setWidth(w int) {
	if w < 10 {
		w = 10
	}
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

func (f *form) focus(i int) {
	f.inputs[f.index].Blur()
	f.index = wrapIndex(i, fieldCount)
	f.inputs[f.index].Focus()
}

func (f *form) registration() reminder.Registration {
	return reminder.Registration{
		PatientID:  strings.TrimSpace(f.inputs[fieldPatientID].Value()),
		Name:       f.inputs[fieldName].Value(),
		Category:   reminder.Category(strings.ToLower(strings.TrimSpace(f.inputs[fieldCategory].Value()))),
		TargetDate: strings.TrimSpace(f.inputs[fieldTargetDate].Value()),
		Remarks:    f.inputs[fieldRemarks].Value(),
	}
}

// firstError returns the index of the first field with a validation error.
func (f *form) firstError() int {
	for i, key := range fieldKeys {
		if _, ok := f.errs[key]; ok {
			return i
		}
	}
	return f.index
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	m.form = newForm()
	if m.width > 0 {
		m.form.setWidth(m.width - 24)
	}
	m.mode = modeAdd
	m.status = "Register: enter to advance, tab/shift+tab to move, esc to cancel"
	return m, textinput.Blink
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.mode = modeList
		return m, nil
	}
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.status = "Registration cancelled"
		return m, nil
	case "tab", "down":
		f.focus(f.index + 1)
		return m, nil
	case "shift+tab", "up":
		f.focus(f.index - 1)
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		if f.index < fieldCount-1 {
			f.focus(f.index + 1)
			return m, nil
		}
		return m.submit()
	case "ctrl+c":
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		f.inputs[f.index], cmd = f.inputs[f.index].Update(msg)
		return m, cmd
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	f := m.form
	r, err := m.tracker.Add(f.registration())
	var verr reminder.ValidationError
	if errors.As(err, &verr) {
		f.errs = verr
		f.focus(f.firstError())
		m.status = fmt.Sprintf("Fix %d field(s) before saving", len(verr))
		return m, nil
	}
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.form = nil
	m.mode = modeList
	m.refresh()
	m.status = fmt.Sprintf("Registered %s for %s", r.Name, r.TargetDate)
	return m, nil
}
