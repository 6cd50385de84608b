package reminder

import "fmt"

// State is the interaction state of one displayed reminder.
type State int

const (
	StateIdle State = iota
	StateConfirming
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateConfirming:
		return "confirming"
	case StateCommitted:
		return "committed"
	default:
		return "idle"
	}
}

// CommitFunc applies a confirmed action to the reminder with the given id.
type CommitFunc func(kind Kind, id string) error

// Prompt is an open confirmation for one reminder.
type Prompt struct {
	ID     string
	Name   string
	Action Descriptor
}

// Message is the question shown to the operator.
func (p Prompt) Message() string {
	return fmt.Sprintf("Set the reminder for %s to %q?", p.Name, p.Action.ConfirmationLabel)
}

type entry struct {
	prompt Prompt
	state  State
}

// Confirmations tracks confirmation prompts keyed by reminder id. A
// reminder has at most one prompt open at a time.
type Confirmations struct {
	entries map[string]*entry
	commit  CommitFunc
}

func NewConfirmations(commit CommitFunc) *Confirmations {
	return &Confirmations{
		entries: map[string]*entry{},
		commit:  commit,
	}
}

// Actionable reports whether kind may be offered for r. Done reminders only
// accept deletion.
func Actionable(r Reminder, kind Kind) bool {
	if !kind.Valid() {
		return false
	}
	if r.IsDone {
		return kind == KindDelete
	}
	return true
}

func (c *Confirmations) State(id string) State {
	if e, ok := c.entries[id]; ok {
		return e.state
	}
	return StateIdle
}

// Pending returns the open prompt for id, if any.
func (c *Confirmations) Pending(id string) (Prompt, bool) {
	e, ok := c.entries[id]
	if !ok || e.state != StateConfirming {
		return Prompt{}, false
	}
	return e.prompt, true
}

// Begin opens a confirmation prompt for kind on r.
func (c *Confirmations) Begin(r Reminder, kind Kind) (Prompt, error) {
	if !Actionable(r, kind) {
		return Prompt{}, fmt.Errorf("%s %s: %w", kind, r.ID, ErrNotActionable)
	}
	if c.State(r.ID) != StateIdle {
		return Prompt{}, fmt.Errorf("%s %s: %w", kind, r.ID, ErrAlreadyConfirming)
	}
	p := Prompt{ID: r.ID, Name: r.Name, Action: Describe(kind)}
	c.entries[r.ID] = &entry{prompt: p, state: StateConfirming}
	return p, nil
}

// Cancel closes the prompt for id without side effects.
func (c *Confirmations) Cancel(id string) error {
	if c.State(id) != StateConfirming {
		return fmt.Errorf("cancel %s: %w", id, ErrNotConfirming)
	}
	delete(c.entries, id)
	return nil
}

// Confirm commits the pending action for id and returns the reminder to
// idle whether or not the commit succeeded.
func (c *Confirmations) Confirm(id string) error {
	e, ok := c.entries[id]
	if !ok || e.state != StateConfirming {
		return fmt.Errorf("confirm %s: %w", id, ErrNotConfirming)
	}
	e.state = StateCommitted
	defer delete(c.entries, id)
	if c.commit == nil {
		return nil
	}
	return c.commit(e.prompt.Action.Kind, id)
}
