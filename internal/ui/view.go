package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"medremind/internal/config"
	"medremind/internal/reminder"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f2937"))
	tabStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#4b5563"))
	badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0d9488"))
	alertStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	promptBox  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#14b8a6"))
)

func intentStyle(i reminder.Intent) lipgloss.Style {
	switch i {
	case reminder.IntentDestructive:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626"))
	case reminder.IntentInformational:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563eb"))
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#14b8a6"))
	}
}

func categoryStyle(c reminder.Category) lipgloss.Style {
	if c == reminder.CategoryFirst {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06b6d4"))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Pharmacy medication reminders"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("today " + reminder.FormatDate(m.tracker.Today())))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.mode == modeAdd && m.form != nil {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderList())
	}

	if m.mode == modeConfirm && m.prompt != nil {
		b.WriteString("\n")
		b.WriteString(m.renderPrompt(*m.prompt))
	}

	b.WriteString("\n---\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, int(tabCount))
	for t := tabRemind; t < tabCount; t++ {
		label := t.title()
		switch t {
		case tabRemind:
			label += " " + badgeStyle.Render(fmt.Sprintf("(%d)", m.buckets.RemindCount()))
		case tabOverdue:
			if n := m.buckets.OverdueCount(); n > 0 {
				label += " " + alertStyle.Render(fmt.Sprintf("(%d)", n))
			}
		}
		if t == m.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderList() string {
	switch m.tab {
	case tabRemind, tabOverdue:
		g := m.buckets.Remind
		if m.tab == tabOverdue {
			g = m.buckets.Overdue
		}
		if g.Len() == 0 {
			return mutedStyle.Render("Nothing to follow up.") + "\n"
		}
		var b strings.Builder
		m.renderSection(&b, "First-time", g.First, 0)
		m.renderSection(&b, "Long-term", g.Long, len(g.First))
		return b.String()
	case tabCompleted:
		if len(m.buckets.Completed) == 0 {
			return mutedStyle.Render("No completed reminders yet.") + "\n"
		}
		var b strings.Builder
		m.renderSection(&b, fmt.Sprintf("History (latest %d)", len(m.buckets.Completed)), m.buckets.Completed, 0)
		return b.String()
	default:
		if len(m.buckets.Future) == 0 {
			return mutedStyle.Render("No upcoming reminders.") + "\n"
		}
		var b strings.Builder
		m.renderSection(&b, "Registered", m.buckets.Future, 0)
		return b.String()
	}
}

func (m Model) renderSection(b *strings.Builder, heading string, rs []reminder.Reminder, offset int) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", heading, len(rs))))
	b.WriteString("\n")
	action := reminder.Describe(m.tab.defaultAction())
	for i, r := range rs {
		cursor := " "
		if m.cursor == offset+i && m.mode != modeAdd {
			cursor = ">"
		}
		b.WriteString(renderRow(cursor, r, action))
		b.WriteString("\n")
		if r.Remarks != "" {
			b.WriteString("      ")
			b.WriteString(mutedStyle.Render("remarks: " + r.Remarks))
			b.WriteString("\n")
		}
	}
}

func renderRow(cursor string, r reminder.Reminder, action reminder.Descriptor) string {
	button := ""
	if reminder.Actionable(r, action.Kind) {
		button = " " + intentStyle(action.Intent).Render("["+action.ButtonLabel+"]")
	}
	return fmt.Sprintf("%s %s %-9s ID:%s  %s  visit %s  due %s%s",
		cursor,
		categoryStyle(r.Category).Render(fmt.Sprintf("%-9s", r.Category.Label())),
		r.DurationLabel(),
		r.PatientID,
		r.Name,
		r.CreatedAt,
		r.TargetDate,
		button,
	)
}

func (m Model) renderPrompt(p reminder.Prompt) string {
	style := intentStyle(p.Action.Intent)
	body := fmt.Sprintf("Confirm\n%s\n\n%s  %s",
		p.Message(),
		mutedStyle.Render(m.cfg.Keys.Cancel+" cancel"),
		style.Render(m.cfg.Keys.Confirm+" "+p.Action.ConfirmLabel),
	)
	return promptBox.BorderForeground(style.GetForeground()).Render(body)
}

func (m Model) renderForm() string {
	f := m.form
	var b strings.Builder
	b.WriteString(titleStyle.Render("Register reminder"))
	b.WriteString("\n")
	for i := range f.inputs {
		prefix := " "
		if i == f.index {
			prefix = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-26s %s", prefix, fieldLabels[i], f.inputs[i].View()))
		if msg, ok := f.errs[fieldKeys[i]]; ok {
			b.WriteString(" ")
			b.WriteString(errStyle.Render(msg))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s/%s tab • %s register • %s complete • %s delete • %s change • %s default action • %s quit",
		k.Up, k.Down, k.NextTab, k.PrevTab, k.Add, k.Complete, k.Delete, k.Edit, k.Confirm, k.Quit)
}
