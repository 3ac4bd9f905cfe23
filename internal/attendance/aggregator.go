package attendance

import (
	"math"
	"time"

	"github.com/anubhawdwd/hrms-be/internal/leave"
)

// TargetMinutes is a full working day.
const TargetMinutes = leave.ReferenceDayMinutes

// MinutesWorked rounds any started minute up.
func MinutesWorked(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Minutes()))
}

// WorkedMinutes sums closed CHECK_IN/CHECK_OUT pairs of one day. Events
// must be in timestamp order; an open check-in adds nothing.
func WorkedMinutes(events []AttendanceEvent) int {
	total := 0
	var open *time.Time
	for i := range events {
		switch events[i].Type {
		case EventCheckIn:
			if open == nil {
				open = &events[i].Timestamp
			}
		case EventCheckOut:
			if open != nil {
				total += MinutesWorked(*open, events[i].Timestamp)
				open = nil
			}
		}
	}
	return total
}

// EffectiveTarget is the day target after approved partial leave is taken off.
func EffectiveTarget(partialLeaveMinutes int) int {
	return max(TargetMinutes-partialLeaveMinutes, 0)
}

func DayStatusFor(totalMinutes, target int) DayStatus {
	switch {
	case totalMinutes >= target:
		return StatusPresent
	case totalMinutes > 0:
		return StatusPartial
	default:
		return StatusAbsent
	}
}

// coveringLeave summarises the approved leave that touches one day.
type coveringLeave struct {
	fullDay        bool
	partialMinutes int
}

func summariseLeave(requests []leave.LeaveRequest) coveringLeave {
	var out coveringLeave
	for _, r := range requests {
		if r.Status != leave.StatusApproved {
			continue
		}
		if r.DurationType == leave.DurationFullDay {
			out.fullDay = true
			continue
		}
		out.partialMinutes += leave.PartialLeaveMinutes(r.DurationType, r.DurationValue)
	}
	return out
}
