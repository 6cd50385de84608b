package reminder

import (
	"errors"
	"strconv"
	"time"
)

// DateLayout is the fixed-width calendar date form used for every stored date.
const DateLayout = "2006-01-02"

// CompletedLimit caps the completed bucket.
const CompletedLimit = 100

// Category separates first-time prescriptions from long-term refills.
type Category string

const (
	CategoryFirst Category = "first"
	CategoryLong  Category = "long"
)

func (c Category) Valid() bool {
	return c == CategoryFirst || c == CategoryLong
}

// Label returns the display name of the category.
func (c Category) Label() string {
	if c == CategoryFirst {
		return "First"
	}
	return "Long-term"
}

var (
	ErrNotFound          = errors.New("reminder not found")
	ErrAlreadyConfirming = errors.New("confirmation already open")
	ErrNotConfirming     = errors.New("no confirmation open")
	ErrNotActionable     = errors.New("action not available for reminder")
)

// Reminder is a single patient medication follow-up.
type Reminder struct {
	ID         string   `json:"id"`
	PatientID  string   `json:"patientId"`
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	CreatedAt  string   `json:"createdAt"`
	TargetDate string   `json:"targetDate"`
	IsDone     bool     `json:"isDone"`
	Remarks    string   `json:"remarks,omitempty"`
}

// FormatDate renders the calendar day of t in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DurationLabel describes the gap between registration and the target date.
func (r Reminder) DurationLabel() string {
	start, err := ParseDate(r.CreatedAt)
	if err != nil {
		return ""
	}
	end, err := ParseDate(r.TargetDate)
	if err != nil {
		return ""
	}
	days := int(end.Sub(start).Hours() / 24)
	switch {
	case days == 0:
		return "same day"
	case days == 7:
		return "1 week"
	case days >= 28 && days <= 31:
		return "1 month"
	case days == 1 || days == -1:
		return strconv.Itoa(days) + " day"
	default:
		return strconv.Itoa(days) + " days"
	}
}
