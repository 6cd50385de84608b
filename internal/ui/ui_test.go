package ui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medremind/internal/config"
	"medremind/internal/reminder"
)

type memStore struct {
	items []reminder.Reminder
	saves int
}

func (m *memStore) Load() []reminder.Reminder {
	return append([]reminder.Reminder(nil), m.items...)
}

func (m *memStore) Save(rs []reminder.Reminder) error {
	m.saves++
	m.items = append([]reminder.Reminder(nil), rs...)
	return nil
}

var testCfg = config.Config{
	DefaultTab: "remind",
	Keys: config.Keymap{
		Quit: "q", NextTab: "tab", PrevTab: "shift+tab", Up: "k", Down: "j",
		Add: "a", Complete: "c", Delete: "d", Edit: "e", Confirm: "enter", Cancel: "esc",
	},
}

func newTestModel(t *testing.T, items ...reminder.Reminder) (Model, *memStore, *reminder.Tracker) {
	t.Helper()
	store := &memStore{items: items}
	n := 0
	tr := reminder.NewTracker(store,
		reminder.WithClock(func() time.Time { return time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC) }),
		reminder.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("new-%d", n)
		}),
	)
	return New(tr, testCfg, zerolog.Nop()), store, tr
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func fixture() []reminder.Reminder {
	return []reminder.Reminder{
		{ID: "due", PatientID: "0000001", Name: "Due Today", Category: reminder.CategoryFirst, CreatedAt: "2025-11-08", TargetDate: "2025-11-15"},
		{ID: "late", PatientID: "0000002", Name: "Late One", Category: reminder.CategoryLong, CreatedAt: "2025-10-01", TargetDate: "2025-11-01"},
		{ID: "done", PatientID: "0000003", Name: "Done Already", Category: reminder.CategoryLong, CreatedAt: "2025-10-01", TargetDate: "2025-11-10", IsDone: true},
		{ID: "soon", PatientID: "0000004", Name: "Next Week", Category: reminder.CategoryFirst, CreatedAt: "2025-11-14", TargetDate: "2025-11-22"},
	}
}

func TestTabsFollowBuckets(t *testing.T) {
	m, _, _ := newTestModel(t, fixture()...)
	assert.Equal(t, tabRemind, m.tab)
	assert.Equal(t, []string{"due"}, rowIDs(m))

	m = press(t, m, "tab")
	assert.Equal(t, tabOverdue, m.tab)
	assert.Equal(t, []string{"late"}, rowIDs(m))

	m = press(t, m, "tab")
	assert.Equal(t, []string{"done"}, rowIDs(m))

	m = press(t, m, "tab")
	assert.Equal(t, []string{"soon"}, rowIDs(m))

	m = press(t, m, "tab")
	assert.Equal(t, tabRemind, m.tab)

	m = press(t, m, "shift+tab")
	assert.Equal(t, tabFuture, m.tab)
}

func rowIDs(m Model) []string {
	var out []string
	for _, r := range m.rows() {
		out = append(out, r.ID)
	}
	return out
}

func TestCompleteRequiresConfirmation(t *testing.T) {
	m, store, tr := newTestModel(t, fixture()...)

	m = press(t, m, "c")
	require.Equal(t, modeConfirm, m.mode)
	require.NotNil(t, m.prompt)
	assert.Equal(t, "due", m.prompt.ID)
	assert.Contains(t, m.View(), "mark handled")
	assert.Equal(t, 0, store.saves)

	m = press(t, m, "enter")
	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.prompt)
	r, _ := tr.Find("due")
	assert.True(t, r.IsDone)
	assert.Equal(t, 1, store.saves)
	assert.Empty(t, rowIDs(m))
	assert.Equal(t, "Marked Due Today as handled", m.status)
}

func TestCancelLeavesReminderUntouched(t *testing.T) {
	m, store, tr := newTestModel(t, fixture()...)
	m = press(t, m, "d", "esc")
	assert.Equal(t, modeList, m.mode)
	_, ok := tr.Find("due")
	assert.True(t, ok)
	assert.Equal(t, 0, store.saves)
	assert.Equal(t, "Cancelled", m.status)
	assert.Equal(t, reminder.StateIdle, m.confirms.State("due"))
}

func TestCompletedTabDeletes(t *testing.T) {
	m, _, tr := newTestModel(t, fixture()...)
	m = press(t, m, "tab", "tab")
	require.Equal(t, tabCompleted, m.tab)

	m = press(t, m, "c")
	assert.Equal(t, modeList, m.mode, "done reminders cannot be completed again")

	m = press(t, m, "enter")
	require.Equal(t, modeConfirm, m.mode)
	assert.Equal(t, reminder.KindDelete, m.prompt.Action.Kind)
	m = press(t, m, "y")
	_, ok := tr.Find("done")
	assert.False(t, ok)
	assert.Equal(t, "Deleted Done Already", m.status)
}

func TestEditDoesNotMutate(t *testing.T) {
	m, store, tr := newTestModel(t, fixture()...)
	before := tr.Reminders()
	m = press(t, m, "e")
	require.Equal(t, modeConfirm, m.mode)
	assert.Equal(t, "Change", m.prompt.Action.ConfirmLabel)
	m = press(t, m, "enter")
	assert.Equal(t, before, tr.Reminders())
	assert.Equal(t, 0, store.saves)
	assert.Contains(t, m.status, "not implemented")
}

func TestRegisterReminder(t *testing.T) {
	m, store, tr := newTestModel(t)
	m = press(t, m, "a")
	require.Equal(t, modeAdd, m.mode)

	m = typeText(t, m, "7654321")
	m = press(t, m, "enter")
	m = typeText(t, m, "Jiro Yamada")
	m = press(t, m, "enter")
	m = press(t, m, "enter") // keep default category
	m = typeText(t, m, "2025-12-15")
	m = press(t, m, "enter")
	m = typeText(t, m, "refill")
	m = press(t, m, "enter")

	assert.Equal(t, modeList, m.mode)
	require.Equal(t, 1, tr.Len())
	r, ok := tr.Find("new-1")
	require.True(t, ok)
	assert.Equal(t, "7654321", r.PatientID)
	assert.Equal(t, "Jiro Yamada", r.Name)
	assert.Equal(t, reminder.CategoryFirst, r.Category)
	assert.Equal(t, "2025-11-15", r.CreatedAt)
	assert.Equal(t, "2025-12-15", r.TargetDate)
	assert.Equal(t, "refill", r.Remarks)
	assert.False(t, r.IsDone)
	assert.Equal(t, 1, store.saves)
}

func TestRegisterShowsValidationErrors(t *testing.T) {
	m, store, tr := newTestModel(t)
	m = press(t, m, "a")
	m = typeText(t, m, "123")
	m = press(t, m, "enter", "enter", "enter", "enter", "enter")

	assert.Equal(t, modeAdd, m.mode)
	require.NotNil(t, m.form)
	assert.Equal(t, "must be 7 digits", m.form.errs["patientId"])
	assert.Equal(t, "is required", m.form.errs["name"])
	assert.Equal(t, "is required", m.form.errs["targetDate"])
	assert.Equal(t, fieldPatientID, m.form.index)
	assert.Contains(t, m.View(), "must be 7 digits")
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 0, store.saves)

	m = press(t, m, "esc")
	assert.Equal(t, modeList, m.mode)
	assert.Nil(t, m.form)
}

func TestViewShowsOverdueBadgeOnlyWhenPresent(t *testing.T) {
	m, _, _ := newTestModel(t, fixture()...)
	assert.Contains(t, m.tabLine(), "Overdue (1)")

	none, _, _ := newTestModel(t, fixture()[0])
	assert.NotContains(t, none.tabLine(), "Overdue (")

	empty, _, _ := newTestModel(t)
	assert.Contains(t, empty.View(), "Nothing to follow up.")
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestClampAndWrap(t *testing.T) {
	assert.Equal(t, 0, clampCursor(5, 0))
	assert.Equal(t, 2, clampCursor(5, 3))
	assert.Equal(t, 0, clampCursor(-1, 3))
	assert.Equal(t, 3, wrapIndex(-1, 4))
	assert.Equal(t, 0, wrapIndex(4, 4))
}

func (m Model) tabLine() string {
	return stripANSI(m.renderTabs())
}

func stripANSI(s string) string {
	var out []rune
	skip := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			skip = true
		case skip && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			skip = false
		case !skip:
			out = append(out, r)
		}
	}
	return string(out)
}
