package reminder

import (
	"sort"
	"strings"
)

// Registration is operator input for a new reminder. The tracker assigns
// the id, creation date and completion flag.
type Registration struct {
	PatientID  string
	Name       string
	Category   Category
	TargetDate string
	Remarks    string
}

// ValidationError maps a field name to its message.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+v[f])
	}
	return "invalid registration: " + strings.Join(parts, "; ")
}

func isPatientID(s string) bool {
	if len(s) != 7 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := ParseDate(s)
	return err == nil
}

// Validate checks reg and returns a ValidationError, or nil.
func (reg Registration) Validate() error {
	errs := ValidationError{}
	if !isPatientID(reg.PatientID) {
		errs["patientId"] = "must be 7 digits"
	}
	if strings.TrimSpace(reg.Name) == "" {
		errs["name"] = "is required"
	}
	if !reg.Category.Valid() {
		errs["category"] = "must be first or long"
	}
	switch {
	case strings.TrimSpace(reg.TargetDate) == "":
		errs["targetDate"] = "is required"
	case !isDate(reg.TargetDate):
		errs["targetDate"] = "must be YYYY-MM-DD"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks the stored invariants of a single reminder.
func (r Reminder) Validate() error {
	errs := ValidationError{}
	if r.ID == "" {
		errs["id"] = "is required"
	}
	if !isPatientID(r.PatientID) {
		errs["patientId"] = "must be 7 digits"
	}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "is required"
	}
	if !r.Category.Valid() {
		errs["category"] = "must be first or long"
	}
	if !isDate(r.CreatedAt) {
		errs["createdAt"] = "must be YYYY-MM-DD"
	}
	if !isDate(r.TargetDate) {
		errs["targetDate"] = "must be YYYY-MM-DD"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
