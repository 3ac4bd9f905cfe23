package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/anubhawdwd/hrms-be/internal/attendance"
	attendanceerrors "github.com/anubhawdwd/hrms-be/internal/attendance/errors"
	"github.com/anubhawdwd/hrms-be/internal/events"
	"github.com/anubhawdwd/hrms-be/internal/leave"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T { return &v }

func TestSetOfficeLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		f := newFixture(t, false)
		tests := []struct {
			name string
			req  attendance.SetOfficeLocationRequest
			want error
		}{
			{name: "missing point", req: attendance.SetOfficeLocationRequest{Latitude: ptr(23.0), RadiusM: 100}, want: attendanceerrors.ErrLocationRequired},
			{name: "latitude", req: attendance.SetOfficeLocationRequest{Latitude: ptr(91.0), Longitude: ptr(72.0), RadiusM: 100}, want: attendanceerrors.ErrInvalidLatitude},
			{name: "longitude", req: attendance.SetOfficeLocationRequest{Latitude: ptr(23.0), Longitude: ptr(-181.0), RadiusM: 100}, want: attendanceerrors.ErrInvalidLongitude},
			{name: "radius", req: attendance.SetOfficeLocationRequest{Latitude: ptr(23.0), Longitude: ptr(72.0)}, want: attendanceerrors.ErrInvalidRadius},
		}
		for _, tt := range tests {
			_, err := f.svc.SetOfficeLocation(ctx, f.companyID, tt.req)
			assert.ErrorIs(t, err, tt.want, tt.name)
		}
		assert.Empty(t, f.repo.offices)
	})

	t.Run("replaces active office", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.svc.GetOfficeLocation(ctx, f.companyID)
		assert.ErrorIs(t, err, attendanceerrors.ErrOfficeNotConfigured)

		expectTx(t, f.sql, true)
		_, err = f.svc.SetOfficeLocation(ctx, f.companyID, attendance.SetOfficeLocationRequest{
			Latitude: ptr(23.0522), Longitude: ptr(72.4938), RadiusM: 200,
		})
		require.NoError(t, err)

		expectTx(t, f.sql, true)
		second, err := f.svc.SetOfficeLocation(ctx, f.companyID, attendance.SetOfficeLocationRequest{
			Latitude: ptr(23.06), Longitude: ptr(72.5), RadiusM: 150,
		})
		require.NoError(t, err)

		require.Len(t, f.repo.offices, 2)
		assert.False(t, f.repo.offices[0].IsActive)
		assert.True(t, f.repo.offices[1].IsActive)

		got, err := f.svc.GetOfficeLocation(ctx, f.companyID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
		assert.Equal(t, 150, got.RadiusM)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})
}

func TestUpsertDesignationPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	designationID := uuid.NewString()

	_, err := f.svc.UpsertDesignationPolicy(ctx, f.companyID, attendance.UpsertDesignationPolicyRequest{
		DesignationID: designationID, AutoPresent: true, AttendanceExempt: true,
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrConflictingFlags)

	_, err = f.svc.UpsertDesignationPolicy(ctx, f.companyID, attendance.UpsertDesignationPolicyRequest{DesignationID: "nope"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDesignationID)

	first, err := f.svc.UpsertDesignationPolicy(ctx, f.companyID, attendance.UpsertDesignationPolicyRequest{
		DesignationID: designationID, AutoPresent: true,
	})
	require.NoError(t, err)

	second, err := f.svc.UpsertDesignationPolicy(ctx, f.companyID, attendance.UpsertDesignationPolicyRequest{
		DesignationID: designationID, AttendanceExempt: true,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.AttendanceExempt)
	assert.False(t, second.AutoPresent)
	assert.Len(t, f.repo.designations, 1)
}

func TestUpsertEmployeeOverride(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	empID := f.emp.ID.String()

	tests := []struct {
		name string
		req  attendance.UpsertEmployeeOverrideRequest
		want error
	}{
		{name: "both flags", req: attendance.UpsertEmployeeOverrideRequest{EmployeeID: empID, AutoPresent: true, AttendanceExempt: true, ValidFrom: "2024-03-01"}, want: attendanceerrors.ErrConflictingFlags},
		{name: "bad from", req: attendance.UpsertEmployeeOverrideRequest{EmployeeID: empID, AutoPresent: true, ValidFrom: "03/01/2024"}, want: attendanceerrors.ErrInvalidDateFormat},
		{name: "window", req: attendance.UpsertEmployeeOverrideRequest{EmployeeID: empID, AutoPresent: true, ValidFrom: "2024-03-10", ValidTo: ptr("2024-03-01")}, want: attendanceerrors.ErrInvalidValidityWindow},
		{name: "unknown employee", req: attendance.UpsertEmployeeOverrideRequest{EmployeeID: uuid.NewString(), AutoPresent: true, ValidFrom: "2024-03-01"}, want: attendanceerrors.ErrEmployeeNotFound},
	}
	for _, tt := range tests {
		_, err := f.svc.UpsertEmployeeOverride(ctx, f.companyID, tt.req)
		assert.ErrorIs(t, err, tt.want, tt.name)
	}

	first, err := f.svc.UpsertEmployeeOverride(ctx, f.companyID, attendance.UpsertEmployeeOverrideRequest{
		EmployeeID: empID, AutoPresent: true, ValidFrom: "2024-03-01", ValidTo: ptr("2024-03-31"), Reason: ptr("field visits"),
	})
	require.NoError(t, err)
	require.NotNil(t, first.ValidTo)
	assert.Equal(t, "2024-03-31", *first.ValidTo)

	second, err := f.svc.UpsertEmployeeOverride(ctx, f.companyID, attendance.UpsertEmployeeOverrideRequest{
		EmployeeID: empID, AttendanceExempt: true, ValidFrom: "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Nil(t, second.ValidTo)
	require.Len(t, f.repo.overrides, 1)
	assert.True(t, f.repo.overrides[0].AttendanceExempt)
}

func TestHRDayCorrections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	empID := f.emp.ID.String()

	_, err := f.svc.HRUpsertDay(ctx, f.companyID, attendance.HRUpsertDayRequest{EmployeeID: empID, Date: "2024-03-01", Status: "HOLIDAY"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)

	_, err = f.svc.HRUpsertDay(ctx, f.companyID, attendance.HRUpsertDayRequest{EmployeeID: empID, Date: "2024-03-01", Status: "present", TotalMinutes: ptr(-5)})
	assert.ErrorIs(t, err, attendanceerrors.ErrNegativeMinutes)

	day, err := f.svc.HRUpsertDay(ctx, f.companyID, attendance.HRUpsertDayRequest{
		EmployeeID: empID, Date: "2024-03-01", Status: "present", TotalMinutes: ptr(480), Reason: "biometric outage",
	})
	require.NoError(t, err)
	assert.Equal(t, "PRESENT", day.Status)
	assert.Equal(t, 480, day.TotalMinutes)

	again, err := f.svc.HRUpsertDay(ctx, f.companyID, attendance.HRUpsertDayRequest{
		EmployeeID: empID, Date: "2024-03-01", Status: "PARTIAL", TotalMinutes: ptr(300),
	})
	require.NoError(t, err)
	assert.Equal(t, day.ID, again.ID)
	assert.Equal(t, "PARTIAL", again.Status)

	updated, err := f.svc.HRUpdateDay(ctx, f.companyID, day.ID, attendance.HRUpdateDayRequest{Status: "absent", TotalMinutes: 0})
	require.NoError(t, err)
	assert.Equal(t, "ABSENT", updated.Status)

	_, err = f.svc.HRUpdateDay(ctx, f.companyID, uuid.NewString(), attendance.HRUpdateDayRequest{Status: "ABSENT"})
	assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceDayNotFound)
}

func TestHRAddEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	empID := f.emp.ID.String()

	_, err := f.svc.HRAddEvent(ctx, f.companyID, attendance.HRAddEventRequest{
		EmployeeID: empID, Date: "2024-03-01", Type: "CHECK_IN", Source: "WEB", Timestamp: "2024-03-02T09:00:00Z",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrEventDateMismatch)

	_, err = f.svc.HRAddEvent(ctx, f.companyID, attendance.HRAddEventRequest{
		EmployeeID: empID, Date: "2024-03-01", Type: "BREAK", Source: "WEB", Timestamp: "2024-03-01T09:00:00Z",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEventType)

	_, err = f.svc.HRAddEvent(ctx, f.companyID, attendance.HRAddEventRequest{
		EmployeeID: empID, Date: "2024-03-01", Type: "CHECK_IN", Source: "WEB", Timestamp: "09:00",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidTimestamp)

	expectTx(t, f.sql, true)
	evt, err := f.svc.HRAddEvent(ctx, f.companyID, attendance.HRAddEventRequest{
		EmployeeID: empID, Date: "2024-03-01", Type: "check_in", Source: "pwa", Timestamp: "2024-03-01T09:15:00Z", Reason: "forgot to punch",
	})
	require.NoError(t, err)
	assert.True(t, evt.IsManual)
	assert.Equal(t, "CHECK_IN", evt.Type)
	require.NotNil(t, evt.Reason)
	assert.Equal(t, "forgot to punch", *evt.Reason)

	day, err := f.svc.GetDay(ctx, f.companyID, empID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, day.Events, 1)
	assert.Equal(t, "ABSENT", day.Status, "manual events leave totals to HR")
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestApplyLeaveEvent(t *testing.T) {
	ctx := context.Background()
	approvedEvent := func(f *fixture, durationType, from, to string) events.LeaveLifecycleEvent {
		return events.LeaveLifecycleEvent{
			EventType:      events.EventLeaveApproved,
			LeaveRequestID: uuid.NewString(),
			CompanyID:      f.companyID,
			EmployeeID:     f.emp.ID.String(),
			DurationType:   durationType,
			FromDate:       from,
			ToDate:         to,
			DayCost:        "6",
		}
	}
	statusOn := func(t *testing.T, f *fixture, date string) attendance.DayStatus {
		t.Helper()
		d, err := f.svc.GetDay(ctx, f.companyID, f.emp.ID.String(), date)
		require.NoError(t, err)
		return attendance.DayStatus(d.Status)
	}

	t.Run("approved marks days up to today", func(t *testing.T) {
		f := newFixture(t, false)
		f.now = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
		ev := approvedEvent(f, "FULL_DAY", "2024-03-01", "2024-03-06")

		expectTx(t, f.sql, true)
		require.NoError(t, f.svc.ApplyLeaveEvent(ctx, ev))
		expectTx(t, f.sql, true)
		require.NoError(t, f.svc.ApplyLeaveEvent(ctx, ev))

		assert.Len(t, f.repo.days, 4)
		assert.Equal(t, attendance.StatusLeave, statusOn(t, f, "2024-03-04"))
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	seedWorked := func(f *fixture, date time.Time, sessions ...[2]int) *attendance.AttendanceDay {
		d := &attendance.AttendanceDay{
			ID: uuid.New(), CompanyID: f.emp.CompanyID, EmployeeID: f.emp.ID, Date: date, Status: attendance.StatusPresent,
		}
		for _, hours := range sessions {
			in := date.Add(time.Duration(hours[0]) * time.Hour)
			d.Events = append(d.Events, attendance.AttendanceEvent{
				ID: uuid.New(), AttendanceDayID: d.ID, Type: attendance.EventCheckIn, Source: attendance.SourceWeb, Timestamp: in,
			})
			if hours[1] > 0 {
				out := date.Add(time.Duration(hours[1]) * time.Hour)
				d.Events = append(d.Events, attendance.AttendanceEvent{
					ID: uuid.New(), AttendanceDayID: d.ID, Type: attendance.EventCheckOut, Source: attendance.SourceWeb, Timestamp: out,
				})
				d.TotalMinutes += attendance.MinutesWorked(in, out)
			}
		}
		f.repo.days[dayKey(f.emp.ID.String(), date)] = d
		return d
	}
	march := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	t.Run("cancelled leave gives worked days their minutes back", func(t *testing.T) {
		f := newFixture(t, false)
		f.now = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
		seedWorked(f, march(1), [2]int{9, 18})
		seedWorked(f, march(2), [2]int{9, 0})
		seedWorked(f, march(3), [2]int{9, 11}, [2]int{14, 16})
		ev := approvedEvent(f, "FULL_DAY", "2024-03-01", "2024-03-04")

		expectTx(t, f.sql, true)
		require.NoError(t, f.svc.ApplyLeaveEvent(ctx, ev))
		leaveDay, err := f.svc.GetDay(ctx, f.companyID, f.emp.ID.String(), "2024-03-01")
		require.NoError(t, err)
		assert.Equal(t, "LEAVE", leaveDay.Status)
		assert.Equal(t, 0, leaveDay.TotalMinutes)

		f.leaves.EXPECT().FindApprovedCovering(gomock.Any(), f.emp.ID.String(), march(1)).Return(nil, nil)
		f.leaves.EXPECT().FindApprovedCovering(gomock.Any(), f.emp.ID.String(), march(2)).Return(nil, nil)
		f.leaves.EXPECT().FindApprovedCovering(gomock.Any(), f.emp.ID.String(), march(3)).
			Return([]leave.LeaveRequest{approved(leave.DurationHalfDay, "0.5")}, nil)

		ev.EventType = events.EventLeaveCancelled
		expectTx(t, f.sql, true)
		require.NoError(t, f.svc.ApplyLeaveEvent(ctx, ev))

		restored, err := f.svc.GetDay(ctx, f.companyID, f.emp.ID.String(), "2024-03-01")
		require.NoError(t, err)
		assert.Equal(t, "PRESENT", restored.Status)
		assert.Equal(t, 540, restored.TotalMinutes)
		assert.Len(t, restored.Events, 2)

		open, err := f.svc.GetDay(ctx, f.companyID, f.emp.ID.String(), "2024-03-02")
		require.NoError(t, err)
		assert.Equal(t, "PRESENT", open.Status, "an open check-in counts as present")
		assert.Equal(t, 0, open.TotalMinutes)

		halfDay, err := f.svc.GetDay(ctx, f.companyID, f.emp.ID.String(), "2024-03-03")
		require.NoError(t, err)
		assert.Equal(t, 240, halfDay.TotalMinutes)
		assert.Equal(t, "PRESENT", halfDay.Status, "half-day leave still lowers the target")

		assert.Equal(t, attendance.StatusAbsent, statusOn(t, f, "2024-03-04"))
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("cancel keeps days still covered by another full-day leave", func(t *testing.T) {
		f := newFixture(t, false)
		f.now = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
		seedWorked(f, march(1), [2]int{9, 12})
		ev := approvedEvent(f, "FULL_DAY", "2024-03-01", "2024-03-01")

		expectTx(t, f.sql, true)
		require.NoError(t, f.svc.ApplyLeaveEvent(ctx, ev))

		f.expectLeave(1, approved(leave.DurationFullDay, "1"))
		ev.EventType = events.EventLeaveCancelled
		expectTx(t, f.sql, true)
		require.NoError(t, f.svc.ApplyLeaveEvent(ctx, ev))

		assert.Equal(t, attendance.StatusLeave, statusOn(t, f, "2024-03-01"))
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("ignored events", func(t *testing.T) {
		f := newFixture(t, false)
		f.now = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

		require.NoError(t, f.svc.ApplyLeaveEvent(ctx, approvedEvent(f, "HALF_DAY", "2024-03-01", "2024-03-01")))
		require.NoError(t, f.svc.ApplyLeaveEvent(ctx, approvedEvent(f, "FULL_DAY", "2024-03-10", "2024-03-12")))

		encashed := approvedEvent(f, "FULL_DAY", "2024-03-01", "2024-03-01")
		encashed.EventType = events.EventEncashmentApproved
		require.NoError(t, f.svc.ApplyLeaveEvent(ctx, encashed))

		assert.Empty(t, f.repo.days)
	})

	t.Run("malformed event", func(t *testing.T) {
		f := newFixture(t, false)
		ev := approvedEvent(f, "FULL_DAY", "2024-03-01", "2024-03-01")
		ev.EmployeeID = "not-a-uuid"
		assert.ErrorIs(t, f.svc.ApplyLeaveEvent(ctx, ev), attendanceerrors.ErrInvalidEmployeeID)
	})
}
