package leave

import (
	"errors"
	"strings"
	"time"

	leaveerrors "github.com/anubhawdwd/hrms-be/internal/leave/errors"
	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"

	"github.com/shopspring/decimal"
)

type DurationType string

const (
	DurationFullDay    DurationType = "FULL_DAY"
	DurationHalfDay    DurationType = "HALF_DAY"
	DurationQuarterDay DurationType = "QUARTER_DAY"
	DurationHourly     DurationType = "HOURLY"
)

func (d DurationType) Valid() bool {
	switch d {
	case DurationFullDay, DurationHalfDay, DurationQuarterDay, DurationHourly:
		return true
	default:
		return false
	}
}

func (d DurationType) Partial() bool {
	return d == DurationHalfDay || d == DurationQuarterDay || d == DurationHourly
}

const (
	// ReferenceDayMinutes is the fixed workday used for attendance targets.
	ReferenceDayMinutes = 480
	referenceDayHours   = 8
	minHourlyMinutes    = 15
	storageScale        = 4
)

type slotWindow struct {
	start calendar.Clock
	end   calendar.Clock
}

var halfDaySlots = map[string]slotWindow{
	"FIRST_HALF":  {calendar.NewClock(9, 0), calendar.NewClock(13, 0)},
	"SECOND_HALF": {calendar.NewClock(14, 0), calendar.NewClock(18, 0)},
}

var quarterDaySlots = map[string]slotWindow{
	"Q1": {calendar.NewClock(9, 0), calendar.NewClock(11, 0)},
	"Q2": {calendar.NewClock(11, 0), calendar.NewClock(13, 0)},
	"Q3": {calendar.NewClock(14, 0), calendar.NewClock(16, 0)},
	"Q4": {calendar.NewClock(16, 0), calendar.NewClock(18, 0)},
}

type DurationInput struct {
	Type      DurationType
	FromDate  time.Time
	ToDate    time.Time
	Slot      string
	StartTime string
	EndTime   string
}

// Duration is the canonical shape of a leave request. Start and End are nil
// for FULL_DAY.
type Duration struct {
	Type  DurationType
	Value decimal.Decimal
	Start *calendar.Clock
	End   *calendar.Clock
}

// ResolveDuration converts a requested leave shape into its day-equivalent value
// and, for partial-day classes, its time window.
func ResolveDuration(in DurationInput) (Duration, error) {
	from, to := calendar.DateOf(in.FromDate), calendar.DateOf(in.ToDate)
	if from.After(to) {
		return Duration{}, leaveerrors.ErrInvalidDateRange
	}
	if from.Year() != to.Year() {
		return Duration{}, leaveerrors.ErrCrossYearSpan
	}
	if !in.Type.Valid() {
		return Duration{}, leaveerrors.ErrInvalidDurationType
	}
	if in.Type.Partial() && !from.Equal(to) {
		return Duration{}, leaveerrors.ErrSingleDayRequired
	}

	switch in.Type {
	case DurationFullDay:
		return Duration{
			Type:  DurationFullDay,
			Value: decimal.NewFromInt(int64(calendar.InclusiveDays(from, to))),
		}, nil
	case DurationHalfDay:
		return slotDuration(in.Type, in.Slot, halfDaySlots, decimal.RequireFromString("0.5"))
	case DurationQuarterDay:
		return slotDuration(in.Type, in.Slot, quarterDaySlots, decimal.RequireFromString("0.25"))
	default:
		return hourlyDuration(in.StartTime, in.EndTime)
	}
}

func slotDuration(t DurationType, slot string, slots map[string]slotWindow, value decimal.Decimal) (Duration, error) {
	slot = strings.ToUpper(strings.TrimSpace(slot))
	if slot == "" {
		return Duration{}, leaveerrors.ErrSlotRequired
	}
	w, ok := slots[slot]
	if !ok {
		return Duration{}, leaveerrors.ErrInvalidSlot
	}
	start, end := w.start, w.end
	return Duration{Type: t, Value: value, Start: &start, End: &end}, nil
}

func hourlyDuration(startRaw, endRaw string) (Duration, error) {
	if strings.TrimSpace(startRaw) == "" || strings.TrimSpace(endRaw) == "" {
		return Duration{}, leaveerrors.ErrTimeRequired
	}
	start, err := calendar.ParseClock(startRaw)
	if err != nil {
		return Duration{}, mapClockError(err)
	}
	end, err := calendar.ParseClock(endRaw)
	if err != nil {
		return Duration{}, mapClockError(err)
	}
	if start >= end {
		return Duration{}, leaveerrors.ErrInvalidTimeWindow
	}

	minutes := int64(end - start)
	if minutes < minHourlyMinutes {
		return Duration{}, leaveerrors.ErrHourlyWindowTooShort
	}

	value := decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).Round(storageScale)
	return Duration{Type: DurationHourly, Value: value, Start: &start, End: &end}, nil
}

func mapClockError(err error) error {
	if errors.Is(err, calendar.ErrInvalidClock) {
		return leaveerrors.ErrInvalidTimeFormat
	}
	return err
}

// ToDays converts a duration value into ledger day units. HOURLY values are
// hours against an 8-hour reference day; the other classes are already days.
func ToDays(t DurationType, value decimal.Decimal) decimal.Decimal {
	if t == DurationHourly {
		return value.Div(decimal.NewFromInt(referenceDayHours)).Round(storageScale)
	}
	return value
}

// PartialLeaveMinutes is the attendance target reduction granted by an
// approved partial-day leave. FULL_DAY returns 0 because it blocks attendance
// altogether.
func PartialLeaveMinutes(t DurationType, value decimal.Decimal) int {
	switch t {
	case DurationHalfDay:
		return 240
	case DurationQuarterDay:
		return 120
	case DurationHourly:
		return int(value.Mul(decimal.NewFromInt(60)).Round(0).IntPart())
	default:
		return 0
	}
}
