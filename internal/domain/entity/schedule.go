// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// NextOccurrence advances a date by one recurring cycle. MONTHLY keeps the
// day-of-month, clamped when the target month is shorter (Jan 31 + 1 month
// is Feb 28, or Feb 29 in a leap year); YEARLY clamps Feb 29 the same way.
func NextOccurrence(from time.Time, interval RecurringInterval) time.Time {
	switch interval {
	case RecurringIntervalDaily:
		return from.AddDate(0, 0, 1)
	case RecurringIntervalWeekly:
		return from.AddDate(0, 0, 7)
	case RecurringIntervalMonthly:
		return addMonthsClamped(from, 1)
	case RecurringIntervalYearly:
		return addYearClamped(from)
	}
	return from
}

// addMonthsClamped adds months without Go's date normalization overflowing
// into the following month.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := daysIn(firstOfTarget.Year(), firstOfTarget.Month())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func addYearClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	lastDay := daysIn(year+1, month)
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year+1, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns the inclusive start and end instants of the calendar
// month containing t, in t's location.
func MonthRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
