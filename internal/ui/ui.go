package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"medremind/internal/config"
	"medremind/internal/reminder"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirm
)

type tab int

const (
	tabRemind tab = iota
	tabOverdue
	tabCompleted
	tabFuture
	tabCount
)

func (t tab) title() string {
	switch t {
	case tabOverdue:
		return "Overdue"
	case tabCompleted:
		return "Completed"
	case tabFuture:
		return "Upcoming"
	default:
		return "Remind"
	}
}

// defaultAction is the action bound to the confirm key on each tab.
func (t tab) defaultAction() reminder.Kind {
	if t == tabCompleted {
		return reminder.KindDelete
	}
	return reminder.KindComplete
}

func parseTab(s string) tab {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overdue":
		return tabOverdue
	case "completed":
		return tabCompleted
	case "future", "upcoming":
		return tabFuture
	default:
		return tabRemind
	}
}

type Model struct {
	tracker  *reminder.Tracker
	confirms *reminder.Confirmations
	cfg      config.Config
	log      zerolog.Logger
	buckets  reminder.Buckets
	tab      tab
	cursor   int
	mode     mode
	prompt   *reminder.Prompt
	form     *form
	status   string
	width    int
}

// New builds the board over tracker.
func New(tracker *reminder.Tracker, cfg config.Config, log zerolog.Logger) Model {
	m := Model{
		tracker:  tracker,
		confirms: reminder.NewConfirmations(tracker.Apply),
		cfg:      cfg,
		log:      log,
		tab:      parseTab(cfg.DefaultTab),
		mode:     modeList,
		status:   fmt.Sprintf("Press '%s' to register, '%s' to complete, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Complete, cfg.Keys.Delete),
	}
	m.refresh()
	return m
}

func Run(tracker *reminder.Tracker, cfg config.Config, log zerolog.Logger) error {
	program := tea.NewProgram(New(tracker, cfg, log), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeConfirm:
			return m.updateConfirm(msg.String())
		case modeAdd:
			return m.updateAddMode(msg.String(), msg)
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.form != nil {
			m.form.setWidth(msg.Width - 24)
		}
	}
	return m, nil
}

func (m *Model) refresh() {
	m.buckets = m.tracker.Buckets()
	m.cursor = clampCursor(m.cursor, len(m.rows()))
}

// rows flattens the current tab into display order.
func (m Model) rows() []reminder.Reminder {
	switch m.tab {
	case tabOverdue:
		return concat(m.buckets.Overdue.First, m.buckets.Overdue.Long)
	case tabCompleted:
		return m.buckets.Completed
	case tabFuture:
		return m.buckets.Future
	default:
		return concat(m.buckets.Remind.First, m.buckets.Remind.Long)
	}
}

func concat(a, b []reminder.Reminder) []reminder.Reminder {
	out := make([]reminder.Reminder, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func (m Model) selected() (reminder.Reminder, bool) {
	rows := m.rows()
	if len(rows) == 0 {
		return reminder.Reminder{}, false
	}
	return rows[clampCursor(m.cursor, len(rows))], true
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.NextTab, "right", "l":
		m.tab = tab(wrapIndex(int(m.tab)+1, int(tabCount)))
		m.cursor = 0
		m.refresh()
		m.status = m.tab.title()
	case k.PrevTab, "left", "h":
		m.tab = tab(wrapIndex(int(m.tab)-1, int(tabCount)))
		m.cursor = 0
		m.refresh()
		m.status = m.tab.title()
	case k.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.rows()))
	case k.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.rows()))
		}
	case k.Add:
		return m.startAdd()
	case k.Complete:
		return m.begin(reminder.KindComplete)
	case k.Delete:
		return m.begin(reminder.KindDelete)
	case k.Edit:
		return m.begin(reminder.KindEdit)
	case k.Confirm:
		return m.begin(m.tab.defaultAction())
	}
	return m, nil
}

func (m Model) begin(kind reminder.Kind) (tea.Model, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		m.status = "No reminders here"
		return m, nil
	}
	p, err := m.confirms.Begin(r, kind)
	switch {
	case errors.Is(err, reminder.ErrNotActionable):
		m.status = fmt.Sprintf("%s is not available for %s", reminder.Describe(kind).ButtonLabel, r.Name)
		return m, nil
	case err != nil:
		m.status = err.Error()
		return m, nil
	}
	m.prompt = &p
	m.mode = modeConfirm
	m.status = fmt.Sprintf("%s  %s/y  %s/n", p.Message(), m.cfg.Keys.Confirm, m.cfg.Keys.Cancel)
	return m, nil
}

func (m Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	if m.prompt == nil {
		m.mode = modeList
		return m, nil
	}
	p := *m.prompt
	switch key {
	case m.cfg.Keys.Cancel, "n", "N":
		if err := m.confirms.Cancel(p.ID); err != nil {
			m.log.Warn().Err(err).Msg("cancel without open prompt")
		}
		m.status = "Cancelled"
	case m.cfg.Keys.Confirm, "y", "Y":
		err := m.confirms.Confirm(p.ID)
		m.status = commitStatus(p, err)
		if err != nil && !errors.Is(err, reminder.ErrNotImplemented) {
			m.log.Warn().Err(err).Str("id", p.ID).Str("action", p.Action.Kind.String()).Msg("action failed")
		}
		m.refresh()
	case "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}
	m.prompt = nil
	m.mode = modeList
	return m, nil
}

func commitStatus(p reminder.Prompt, err error) string {
	switch {
	case errors.Is(err, reminder.ErrNotImplemented):
		return fmt.Sprintf("%s is not implemented yet; %s was not modified", p.Action.ButtonLabel, p.Name)
	case errors.Is(err, reminder.ErrNotFound):
		return fmt.Sprintf("%s no longer exists", p.Name)
	case err != nil:
		return fmt.Sprintf("%s failed: %v", strings.ToLower(p.Action.ButtonLabel), err)
	}
	switch p.Action.Kind {
	case reminder.KindDelete:
		return fmt.Sprintf("Deleted %s", p.Name)
	default:
		return fmt.Sprintf("Marked %s as handled", p.Name)
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
