package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/anubhawdwd/hrms-be/internal/attendance"
	"github.com/anubhawdwd/hrms-be/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesWorked(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 540, attendance.MinutesWorked(in, in.Add(9*time.Hour)))
	assert.Equal(t, 1, attendance.MinutesWorked(in, in.Add(time.Second)))
	assert.Equal(t, 61, attendance.MinutesWorked(in, in.Add(60*time.Minute+30*time.Second)))
	assert.Equal(t, 0, attendance.MinutesWorked(in, in))
	assert.Equal(t, 0, attendance.MinutesWorked(in, in.Add(-time.Hour)))
}

func TestEffectiveTargetAndStatus(t *testing.T) {
	assert.Equal(t, 480, attendance.EffectiveTarget(0))
	assert.Equal(t, 240, attendance.EffectiveTarget(240))
	assert.Equal(t, 0, attendance.EffectiveTarget(600))

	assert.Equal(t, attendance.StatusPresent, attendance.DayStatusFor(480, 480))
	assert.Equal(t, attendance.StatusPresent, attendance.DayStatusFor(540, 240))
	assert.Equal(t, attendance.StatusPartial, attendance.DayStatusFor(200, 240))
	assert.Equal(t, attendance.StatusAbsent, attendance.DayStatusFor(0, 480))
	assert.Equal(t, attendance.StatusPresent, attendance.DayStatusFor(0, 0))
}

func TestHaversineMeters(t *testing.T) {
	origin := attendance.Point{Latitude: 0, Longitude: 0}
	east := attendance.Point{Latitude: 0, Longitude: 1}

	assert.InDelta(t, 111194.93, attendance.HaversineMeters(origin, east), 0.01)
	assert.InDelta(t, attendance.HaversineMeters(east, origin), attendance.HaversineMeters(origin, east), 1e-9)
	assert.Zero(t, attendance.HaversineMeters(officeCenter, officeCenter))
	assert.InDelta(t, 250, attendance.HaversineMeters(officeCenter, north(officeCenter, 250)), 0.01)
}

func TestPolicyResolver(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	designationID := uuid.New()
	emp := &employee.Employee{ID: uuid.New(), CompanyID: uuid.New(), DesignationID: &designationID}

	repo := newFakeRepo()
	resolver := attendance.NewPolicyResolver(repo)

	p, err := resolver.Resolve(ctx, emp, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.Policy{}, p)

	repo.designations[designationID.String()] = attendance.DesignationAttendancePolicy{DesignationID: designationID, AutoPresent: true}
	p, err = resolver.Resolve(ctx, emp, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.Policy{AutoPresent: true}, p)

	expired := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	repo.overrides = append(repo.overrides, attendance.EmployeeAttendanceOverride{
		EmployeeID:       emp.ID,
		AttendanceExempt: true,
		ValidFrom:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:          &expired,
	})
	p, err = resolver.Resolve(ctx, emp, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.Policy{AutoPresent: true}, p, "expired override falls back to designation")

	repo.overrides = append(repo.overrides, attendance.EmployeeAttendanceOverride{
		EmployeeID:       emp.ID,
		AttendanceExempt: true,
		ValidFrom:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	p, err = resolver.Resolve(ctx, emp, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.Policy{Exempt: true}, p)

	emp.DesignationID = nil
	repo.overrides = nil
	p, err = resolver.Resolve(ctx, emp, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.Policy{}, p)
}

func TestWorkedMinutes(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 3, 4, h, m, 0, 0, time.UTC) }
	ev := func(typ attendance.EventType, ts time.Time) attendance.AttendanceEvent {
		return attendance.AttendanceEvent{Type: typ, Timestamp: ts}
	}

	tests := []struct {
		name   string
		events []attendance.AttendanceEvent
		want   int
	}{
		{name: "none", want: 0},
		{name: "one session", events: []attendance.AttendanceEvent{
			ev(attendance.EventCheckIn, at(9, 0)), ev(attendance.EventCheckOut, at(18, 0)),
		}, want: 540},
		{name: "two sessions", events: []attendance.AttendanceEvent{
			ev(attendance.EventCheckIn, at(9, 0)), ev(attendance.EventCheckOut, at(13, 0)),
			ev(attendance.EventCheckIn, at(14, 0)), ev(attendance.EventCheckOut, at(17, 30)),
		}, want: 450},
		{name: "open session adds nothing", events: []attendance.AttendanceEvent{
			ev(attendance.EventCheckIn, at(9, 0)), ev(attendance.EventCheckOut, at(10, 0)),
			ev(attendance.EventCheckIn, at(11, 0)),
		}, want: 60},
		{name: "stray check-out is ignored", events: []attendance.AttendanceEvent{
			ev(attendance.EventCheckOut, at(8, 0)),
			ev(attendance.EventCheckIn, at(9, 0)), ev(attendance.EventCheckOut, at(9, 0).Add(30*time.Second)),
		}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attendance.WorkedMinutes(tt.events))
		})
	}
}
