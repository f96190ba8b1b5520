package service

import (
	"time"

	"todoflow/internal/model"
)

// NextDue maps a recurrence pattern and an anchor time to the next due
// time. Monthly and yearly use fixed 30/365-day offsets rather than
// calendar-aware arithmetic; that approximation is part of the observed
// behavior and is kept deliberately. An empty or unknown pattern
// returns the anchor unchanged, which callers must read as "do not
// regenerate".
func NextDue(pattern model.Recurrence, anchor time.Time) time.Time {
	switch pattern {
	case model.RecurrenceDaily:
		return anchor.AddDate(0, 0, 1)
	case model.RecurrenceWeekly:
		return anchor.AddDate(0, 0, 7)
	case model.RecurrenceMonthly:
		return anchor.AddDate(0, 0, 30)
	case model.RecurrenceYearly:
		return anchor.AddDate(0, 0, 365)
	default:
		return anchor
	}
}
