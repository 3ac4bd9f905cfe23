package leave

import (
	"time"

	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"
)

// Window is the occupied span of a leave request. A FULL_DAY window blocks
// the whole date range; partial windows occupy [Start, End) on a single date.
type Window struct {
	Date    time.Time
	ToDate  time.Time
	FullDay bool
	Start   calendar.Clock
	End     calendar.Clock
}

func WindowOf(r LeaveRequest) Window {
	w := Window{
		Date:    calendar.DateOf(r.FromDate),
		ToDate:  calendar.DateOf(r.ToDate),
		FullDay: r.DurationType == DurationFullDay,
	}
	if w.FullDay {
		return w
	}
	if r.StartTime != nil {
		if c, err := calendar.ParseClock(*r.StartTime); err == nil {
			w.Start = c
		}
	}
	if r.EndTime != nil {
		if c, err := calendar.ParseClock(*r.EndTime); err == nil {
			w.End = c
		}
	}
	// stored partial rows without a usable window block the whole day
	if w.End <= w.Start {
		w.FullDay = true
	}
	return w
}

func windowFromDuration(from, to time.Time, d Duration) Window {
	w := Window{Date: calendar.DateOf(from), ToDate: calendar.DateOf(to), FullDay: d.Type == DurationFullDay}
	if !w.FullDay && d.Start != nil && d.End != nil {
		w.Start, w.End = *d.Start, *d.End
	}
	return w
}

// Conflicts reports whether two windows occupy any common time. Partial
// windows touching at a boundary (10:00-11:00 and 11:00-12:00) do not conflict.
func (w Window) Conflicts(o Window) bool {
	if w.Date.After(o.ToDate) || o.Date.After(w.ToDate) {
		return false
	}
	if w.FullDay || o.FullDay {
		return true
	}
	return w.Start < o.End && o.Start < w.End
}

// FindConflict returns the first existing request whose window conflicts
// with candidate. Only PENDING and APPROVED requests are considered.
func FindConflict(candidate Window, existing []LeaveRequest) (*LeaveRequest, bool) {
	for i := range existing {
		if existing[i].Status != StatusPending && existing[i].Status != StatusApproved {
			continue
		}
		if candidate.Conflicts(WindowOf(existing[i])) {
			return &existing[i], true
		}
	}
	return nil, false
}
