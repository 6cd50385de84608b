package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"medremind/internal/reminder"
)

// DefaultKey is the slot holding the reminder collection.
const DefaultKey = "reminders"

// KV is a single-value-per-key durable store.
type KV interface {
	Get(key string) (string, error)
	Put(key, value string) error
}

// ReminderStore keeps the full reminder collection as one JSON array in a
// single KV slot.
type ReminderStore struct {
	kv       KV
	key      string
	fallback func() []reminder.Reminder
	log      zerolog.Logger
}

// NewReminderStore returns an adapter over kv. fallback supplies the
// collection used when the slot is empty or unreadable; nil means an
// empty collection.
func NewReminderStore(kv KV, key string, fallback func() []reminder.Reminder, log zerolog.Logger) *ReminderStore {
	if key == "" {
		key = DefaultKey
	}
	if fallback == nil {
		fallback = func() []reminder.Reminder { return []reminder.Reminder{} }
	}
	return &ReminderStore{kv: kv, key: key, fallback: fallback, log: log}
}

// Load returns the stored collection, or the fallback when the slot is
// missing or holds anything that does not decode into valid reminders.
func (s *ReminderStore) Load() []reminder.Reminder {
	raw, err := s.kv.Get(s.key)
	if err != nil {
		if errors.Is(err, ErrNoValue) {
			s.log.Info().Str("key", s.key).Msg("no stored reminders; using defaults")
		} else {
			s.log.Warn().Err(err).Str("key", s.key).Msg("read reminders failed; using defaults")
		}
		return s.fallback()
	}
	items, err := decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("stored reminders are malformed; using defaults")
		return s.fallback()
	}
	s.log.Debug().Str("key", s.key).Int("count", len(items)).Msg("reminders loaded")
	return items
}

// Save overwrites the slot with the full collection.
func (s *ReminderStore) Save(items []reminder.Reminder) error {
	raw, err := encode(items)
	if err != nil {
		return err
	}
	return s.kv.Put(s.key, raw)
}

func encode(items []reminder.Reminder) (string, error) {
	if items == nil {
		items = []reminder.Reminder{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode reminders: %w", err)
	}
	return string(data), nil
}

func decode(raw string) ([]reminder.Reminder, error) {
	var items []reminder.Reminder
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}
	if items == nil {
		return nil, errors.New("decode reminders: value is not an array")
	}
	if err := reminder.ValidateAll(items); err != nil {
		return nil, err
	}
	return items, nil
}
