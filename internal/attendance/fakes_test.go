package attendance_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/anubhawdwd/hrms-be/internal/attendance"
	attendanceerrors "github.com/anubhawdwd/hrms-be/internal/attendance/errors"
	"github.com/anubhawdwd/hrms-be/internal/employee"
	employeeerrors "github.com/anubhawdwd/hrms-be/internal/employee/errors"
	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func dayKey(employeeID string, date time.Time) string {
	return fmt.Sprintf("%s:%s", employeeID, calendar.FormatDate(date))
}

// fakeRepo is an in-memory attendance store.
type fakeRepo struct {
	offices      []attendance.OfficeLocation
	overrides    []attendance.EmployeeAttendanceOverride
	designations map[string]attendance.DesignationAttendancePolicy
	days         map[string]*attendance.AttendanceDay
	violations   []attendance.AttendanceViolation

	findActiveOfficeCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		designations: map[string]attendance.DesignationAttendancePolicy{},
		days:         map[string]*attendance.AttendanceDay{},
	}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) attendance.Repository { return f }

func (f *fakeRepo) FindActiveOffice(ctx context.Context, companyID string) (*attendance.OfficeLocation, error) {
	f.findActiveOfficeCalls++
	for i := len(f.offices) - 1; i >= 0; i-- {
		o := f.offices[i]
		if o.IsActive && o.CompanyID.String() == companyID {
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) DeactivateOffices(ctx context.Context, companyID string) error {
	for i := range f.offices {
		if f.offices[i].CompanyID.String() == companyID {
			f.offices[i].IsActive = false
		}
	}
	return nil
}

func (f *fakeRepo) CreateOffice(ctx context.Context, o *attendance.OfficeLocation) error {
	f.offices = append(f.offices, *o)
	return nil
}

func (f *fakeRepo) FindActiveOverride(ctx context.Context, companyID, employeeID string, day time.Time) (*attendance.EmployeeAttendanceOverride, error) {
	var best *attendance.EmployeeAttendanceOverride
	for i := range f.overrides {
		o := f.overrides[i]
		if o.EmployeeID.String() != employeeID || o.ValidFrom.After(day) {
			continue
		}
		if o.ValidTo != nil && o.ValidTo.Before(day) {
			continue
		}
		if best == nil || o.ValidFrom.After(best.ValidFrom) {
			best = &o
		}
	}
	return best, nil
}

func (f *fakeRepo) FindOverride(ctx context.Context, companyID, employeeID string, validFrom time.Time) (*attendance.EmployeeAttendanceOverride, error) {
	for i := range f.overrides {
		if f.overrides[i].EmployeeID.String() == employeeID && f.overrides[i].ValidFrom.Equal(validFrom) {
			o := f.overrides[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) UpsertOverride(ctx context.Context, o *attendance.EmployeeAttendanceOverride) error {
	for i := range f.overrides {
		if f.overrides[i].EmployeeID == o.EmployeeID && f.overrides[i].ValidFrom.Equal(o.ValidFrom) {
			f.overrides[i] = *o
			return nil
		}
	}
	f.overrides = append(f.overrides, *o)
	return nil
}

func (f *fakeRepo) FindDesignationPolicy(ctx context.Context, companyID, designationID string) (*attendance.DesignationAttendancePolicy, error) {
	p, ok := f.designations[designationID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeRepo) UpsertDesignationPolicy(ctx context.Context, p *attendance.DesignationAttendancePolicy) error {
	f.designations[p.DesignationID.String()] = *p
	return nil
}

func copyDay(d *attendance.AttendanceDay) *attendance.AttendanceDay {
	cp := *d
	cp.Events = append([]attendance.AttendanceEvent(nil), d.Events...)
	sort.Slice(cp.Events, func(i, j int) bool { return cp.Events[i].Timestamp.Before(cp.Events[j].Timestamp) })
	return &cp
}

func (f *fakeRepo) EnsureDay(ctx context.Context, companyID, employeeID uuid.UUID, date time.Time) (*attendance.AttendanceDay, error) {
	key := dayKey(employeeID.String(), date)
	if _, ok := f.days[key]; !ok {
		f.days[key] = &attendance.AttendanceDay{
			ID:         uuid.New(),
			CompanyID:  companyID,
			EmployeeID: employeeID,
			Date:       date,
			Status:     attendance.StatusAbsent,
		}
	}
	return copyDay(f.days[key]), nil
}

func (f *fakeRepo) FindDay(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	d, ok := f.days[dayKey(employeeID, date)]
	if !ok {
		return nil, attendanceerrors.ErrAttendanceDayNotFound
	}
	return copyDay(d), nil
}

func (f *fakeRepo) FindDayForUpdate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	return f.FindDay(ctx, companyID, employeeID, date)
}

func (f *fakeRepo) FindDayByID(ctx context.Context, companyID, id string) (*attendance.AttendanceDay, error) {
	for _, d := range f.days {
		if d.ID.String() == id && d.CompanyID.String() == companyID {
			return copyDay(d), nil
		}
	}
	return nil, attendanceerrors.ErrAttendanceDayNotFound
}

func (f *fakeRepo) ListDays(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.AttendanceDay, error) {
	var out []attendance.AttendanceDay
	for _, d := range f.days {
		if d.EmployeeID.String() == employeeID && calendar.Covers(from, to, d.Date) {
			out = append(out, *copyDay(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeRepo) UpdateDaySummary(ctx context.Context, id uuid.UUID, totalMinutes int, status attendance.DayStatus) error {
	for _, d := range f.days {
		if d.ID == id {
			d.TotalMinutes, d.Status = totalMinutes, status
			return nil
		}
	}
	return attendanceerrors.ErrAttendanceDayNotFound
}

func (f *fakeRepo) UpsertDay(ctx context.Context, d *attendance.AttendanceDay) error {
	key := dayKey(d.EmployeeID.String(), d.Date)
	if existing, ok := f.days[key]; ok {
		existing.TotalMinutes, existing.Status = d.TotalMinutes, d.Status
		return nil
	}
	cp := *d
	f.days[key] = &cp
	return nil
}

func (f *fakeRepo) AddEvent(ctx context.Context, e *attendance.AttendanceEvent) error {
	for _, d := range f.days {
		if d.ID == e.AttendanceDayID {
			d.Events = append(d.Events, *e)
			return nil
		}
	}
	return attendanceerrors.ErrAttendanceDayNotFound
}

func (f *fakeRepo) CreateViolation(ctx context.Context, v *attendance.AttendanceViolation) error {
	f.violations = append(f.violations, *v)
	return nil
}

func (f *fakeRepo) ListViolations(ctx context.Context, companyID string, filter attendance.ViolationFilter) ([]attendance.AttendanceViolation, error) {
	var out []attendance.AttendanceViolation
	for _, v := range f.violations {
		if filter.EmployeeID != "" && v.EmployeeID.String() != filter.EmployeeID {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

type fakeEmployees map[string]employee.Employee

func (f fakeEmployees) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	e, ok := f[id]
	if !ok || e.CompanyID.String() != companyID {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	return &e, nil
}

type fakeSettings struct {
	logViolations bool
}

func (f fakeSettings) ViolationLoggingEnabled(ctx context.Context, companyID string) (bool, error) {
	return f.logViolations, nil
}
