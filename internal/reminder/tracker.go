package reminder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotImplemented is returned for actions that exist in the UI but do not
// change data yet.
var ErrNotImplemented = errors.New("not implemented")

// Persister loads and saves the whole reminder collection.
type Persister interface {
	Load() []Reminder
	Save([]Reminder) error
}

// Tracker owns the in-memory reminder collection. Every successful mutation
// is written through the persister; a failed write is logged and the
// in-memory state stays authoritative.
type Tracker struct {
	items []Reminder
	store Persister
	now   func() time.Time
	newID func() string
	limit int
	log   zerolog.Logger
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) { t.newID = gen }
}

func WithLogger(log zerolog.Logger) Option {
	return func(t *Tracker) { t.log = log }
}

// WithCompletedLimit overrides the completed bucket cap.
func WithCompletedLimit(n int) Option {
	return func(t *Tracker) { t.limit = n }
}

// NewTracker hydrates a tracker from store.
func NewTracker(store Persister, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
		limit: CompletedLimit,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.items = append([]Reminder(nil), store.Load()...)
	return t
}

// Reminders returns a copy of the collection in insertion order.
func (t *Tracker) Reminders() []Reminder {
	return append([]Reminder(nil), t.items...)
}

func (t *Tracker) Len() int {
	return len(t.items)
}

// Today returns the tracker clock reading used for classification and creation dates.
func (t *Tracker) Today() time.Time {
	return t.now()
}

// Buckets classifies the collection against the tracker clock.
func (t *Tracker) Buckets() Buckets {
	return ClassifyLimit(t.Reminders(), t.now(), t.limit)
}

func (t *Tracker) Find(id string) (Reminder, bool) {
	if i := t.index(id); i >= 0 {
		return t.items[i], true
	}
	return Reminder{}, false
}

func (t *Tracker) index(id string) int {
	for i := range t.items {
		if t.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add validates reg and appends a new open reminder created today.
func (t *Tracker) Add(reg Registration) (Reminder, error) {
	if err := reg.Validate(); err != nil {
		return Reminder{}, err
	}
	id := t.newID()
	if t.index(id) >= 0 {
		return Reminder{}, fmt.Errorf("add reminder: id %s already in use", id)
	}
	r := Reminder{
		ID:         id,
		PatientID:  reg.PatientID,
		Name:       strings.TrimSpace(reg.Name),
		Category:   reg.Category,
		CreatedAt:  FormatDate(t.now()),
		TargetDate: reg.TargetDate,
		IsDone:     false,
		Remarks:    strings.TrimSpace(reg.Remarks),
	}
	t.items = append(t.items, r)
	t.persist("add", r.ID)
	return r, nil
}

// Complete marks the reminder done. Completing a done reminder is a no-op.
func (t *Tracker) Complete(id string) error {
	i := t.index(id)
	if i < 0 {
		return fmt.Errorf("complete %s: %w", id, ErrNotFound)
	}
	if t.items[i].IsDone {
		return nil
	}
	t.items[i].IsDone = true
	t.persist("complete", id)
	return nil
}

func (t *Tracker) Delete(id string) error {
	i := t.index(id)
	if i < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	t.items = append(t.items[:i], t.items[i+1:]...)
	t.persist("delete", id)
	return nil
}

// Edit is a placeholder: it records the request and leaves data untouched.
func (t *Tracker) Edit(id string) error {
	if t.index(id) < 0 {
		return fmt.Errorf("edit %s: %w", id, ErrNotFound)
	}
	t.log.Info().Str("id", id).Msg("edit requested; editing is not implemented")
	return fmt.Errorf("edit %s: %w", id, ErrNotImplemented)
}

// Apply dispatches a confirmed action. It satisfies CommitFunc.
func (t *Tracker) Apply(kind Kind, id string) error {
	switch kind {
	case KindComplete:
		return t.Complete(id)
	case KindDelete:
		return t.Delete(id)
	case KindEdit:
		return t.Edit(id)
	default:
		t.log.Error().Int("kind", int(kind)).Str("id", id).Msg("unknown action kind")
		return fmt.Errorf("apply %d to %s: unknown action", kind, id)
	}
}

func (t *Tracker) persist(op, id string) {
	if err := t.store.Save(t.Reminders()); err != nil {
		t.log.Error().Err(err).Str("op", op).Str("id", id).Msg("save reminders failed; keeping in-memory state")
		return
	}
	t.log.Debug().Str("op", op).Str("id", id).Int("count", len(t.items)).Msg("reminders saved")
}
