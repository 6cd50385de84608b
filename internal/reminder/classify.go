package reminder

import (
	"sort"
	"time"
)

// Group holds the two category sub-buckets of a temporal bucket.
type Group struct {
	First []Reminder
	Long  []Reminder
}

// Len returns the number of reminders in both categories.
func (g Group) Len() int {
	return len(g.First) + len(g.Long)
}

func (g *Group) add(r Reminder) {
	if r.Category == CategoryFirst {
		g.First = append(g.First, r)
		return
	}
	g.Long = append(g.Long, r)
}

// Buckets partitions a reminder collection for display.
//
// Remind covers open reminders due from seven days ago through today,
// Overdue covers open reminders due before that, Future covers open
// reminders due after today and Completed holds the most recent done ones.
type Buckets struct {
	Remind    Group
	Overdue   Group
	Completed []Reminder
	Future    []Reminder
}

func (b Buckets) RemindCount() int {
	return b.Remind.Len()
}

func (b Buckets) OverdueCount() int {
	return b.Overdue.Len()
}

// Total counts every reminder present in the buckets.
func (b Buckets) Total() int {
	return b.Remind.Len() + b.Overdue.Len() + len(b.Completed) + len(b.Future)
}

// Classify buckets reminders relative to today using the default completed cap.
func Classify(reminders []Reminder, today time.Time) Buckets {
	return ClassifyLimit(reminders, today, CompletedLimit)
}

// ClassifyLimit is Classify with an explicit completed cap. A limit <= 0
// keeps every completed reminder.
func ClassifyLimit(reminders []Reminder, today time.Time, limit int) Buckets {
	w := newWindow(today)
	b := Buckets{
		Remind:    Group{First: []Reminder{}, Long: []Reminder{}},
		Overdue:   Group{First: []Reminder{}, Long: []Reminder{}},
		Completed: []Reminder{},
		Future:    []Reminder{},
	}

	for _, r := range reminders {
		switch w.place(r) {
		case placeCompleted:
			b.Completed = append(b.Completed, r)
		case placeFuture:
			b.Future = append(b.Future, r)
		case placeOverdue:
			b.Overdue.add(r)
		default:
			b.Remind.add(r)
		}
	}

	sortByTargetAsc(b.Remind.First)
	sortByTargetAsc(b.Remind.Long)
	sortByTargetAsc(b.Overdue.First)
	sortByTargetAsc(b.Overdue.Long)

	sort.SliceStable(b.Completed, func(i, j int) bool {
		return b.Completed[i].TargetDate > b.Completed[j].TargetDate
	})
	if limit > 0 && len(b.Completed) > limit {
		b.Completed = b.Completed[:limit]
	}

	sort.SliceStable(b.Future, func(i, j int) bool {
		return b.Future[i].CreatedAt > b.Future[j].CreatedAt
	})
	return b
}

func sortByTargetAsc(rs []Reminder) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].TargetDate < rs[j].TargetDate
	})
}

type placement int

const (
	placeRemind placement = iota
	placeOverdue
	placeFuture
	placeCompleted
)

// window holds today and the overdue cutoff as fixed-width date strings so
// every bucket decision uses the same comparison.
type window struct {
	today  string
	cutoff string
}

func newWindow(now time.Time) window {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return window{
		today:  FormatDate(day),
		cutoff: FormatDate(day.AddDate(0, 0, -7)),
	}
}

func (w window) place(r Reminder) placement {
	switch {
	case r.IsDone:
		return placeCompleted
	case r.TargetDate > w.today:
		return placeFuture
	case r.TargetDate < w.cutoff:
		return placeOverdue
	default:
		return placeRemind
	}
}
