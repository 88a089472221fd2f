package services

import (
	"time"

	"github.com/LovationAdmin/spendwise-api/store"
)

// Clock returns the current time in the zone used for month boundaries.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// monthStart returns midnight on the first day of the month that lies offset
// months before now's month. offset must be in [0, 12).
func monthStart(now time.Time, offset int) time.Time {
	year, month := now.Year(), int(now.Month())
	if month > offset {
		month -= offset
	} else {
		year--
		month = 12 + month - offset
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
}

// lastDayOfMonth jumps to day 28, adds 4 days (always landing in the next
// month), truncates to day 1 and steps back one day.
func lastDayOfMonth(t time.Time) time.Time {
	nextMonth := time.Date(t.Year(), t.Month(), 28, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 4)
	first := time.Date(nextMonth.Year(), nextMonth.Month(), 1, 0, 0, 0, 0, nextMonth.Location())
	return first.AddDate(0, 0, -1)
}

// monthRange covers the whole calendar month starting at start, last day included.
// The upper bound stops one microsecond short of midnight, the finest
// resolution Postgres keeps.
func monthRange(start time.Time) store.TimeRange {
	end := lastDayOfMonth(start).AddDate(0, 0, 1).Add(-time.Microsecond)
	return store.TimeRange{From: start, To: end}
}

// currentMonth runs from the first of now's month up to now.
func currentMonth(now time.Time) store.TimeRange {
	return store.TimeRange{From: monthStart(now, 0), To: now}
}

func monthLabel(start time.Time) string {
	return start.Format("Jan 2006")
}
