package leave_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anubhawdwd/hrms-be/internal/employee"
	employeeerrors "github.com/anubhawdwd/hrms-be/internal/employee/errors"
	"github.com/anubhawdwd/hrms-be/internal/leave"
	leaveerrors "github.com/anubhawdwd/hrms-be/internal/leave/errors"
	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
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

// fakeLeaveRepository keeps rows in memory; the *Fn hooks override single calls.
type fakeLeaveRepository struct {
	leaveTypes  map[string]*leave.LeaveType
	policies    map[string]*leave.LeavePolicy
	overrides   map[string]*leave.EmployeeLeaveOverride
	holidays    []leave.Holiday
	requests    map[string]*leave.LeaveRequest
	encashments map[string]*leave.LeaveEncashment
	calls       []string

	createLeaveTypeFn func(ctx context.Context, lt *leave.LeaveType) error
	createRequestFn   func(ctx context.Context, r *leave.LeaveRequest) error
}

func newFakeLeaveRepository() *fakeLeaveRepository {
	return &fakeLeaveRepository{
		leaveTypes:  map[string]*leave.LeaveType{},
		policies:    map[string]*leave.LeavePolicy{},
		overrides:   map[string]*leave.EmployeeLeaveOverride{},
		requests:    map[string]*leave.LeaveRequest{},
		encashments: map[string]*leave.LeaveEncashment{},
	}
}

func policyKey(leaveTypeID string, year int) string {
	return fmt.Sprintf("%s:%d", leaveTypeID, year)
}

func overrideKey(employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("%s:%s:%d", employeeID, leaveTypeID, year)
}

func (f *fakeLeaveRepository) WithTx(tx *gorm.DB) leave.Repository { return f }

func (f *fakeLeaveRepository) CreateLeaveType(ctx context.Context, lt *leave.LeaveType) error {
	if f.createLeaveTypeFn != nil {
		return f.createLeaveTypeFn(ctx, lt)
	}
	cp := *lt
	f.leaveTypes[lt.ID.String()] = &cp
	return nil
}

func (f *fakeLeaveRepository) UpdateLeaveType(ctx context.Context, lt *leave.LeaveType) error {
	if _, ok := f.leaveTypes[lt.ID.String()]; !ok {
		return leaveerrors.ErrLeaveTypeNotFound
	}
	cp := *lt
	f.leaveTypes[lt.ID.String()] = &cp
	return nil
}

func (f *fakeLeaveRepository) FindLeaveType(ctx context.Context, companyID, id string) (*leave.LeaveType, error) {
	lt, ok := f.leaveTypes[id]
	if !ok || lt.CompanyID.String() != companyID {
		return nil, leaveerrors.ErrLeaveTypeNotFound
	}
	cp := *lt
	return &cp, nil
}

func (f *fakeLeaveRepository) ListLeaveTypes(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.leaveTypes {
		if lt.CompanyID.String() == companyID {
			out = append(out, *lt)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) UpsertPolicy(ctx context.Context, p *leave.LeavePolicy) error {
	cp := *p
	f.policies[policyKey(p.LeaveTypeID.String(), p.Year)] = &cp
	return nil
}

func (f *fakeLeaveRepository) FindPolicy(ctx context.Context, companyID, leaveTypeID string, year int) (*leave.LeavePolicy, error) {
	p, ok := f.policies[policyKey(leaveTypeID, year)]
	if !ok {
		return nil, leaveerrors.ErrPolicyNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeLeaveRepository) ListPolicies(ctx context.Context, companyID string, year int) ([]leave.LeavePolicy, error) {
	var out []leave.LeavePolicy
	for _, p := range f.policies {
		if p.Year == year {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) UpsertOverride(ctx context.Context, o *leave.EmployeeLeaveOverride) error {
	cp := *o
	f.overrides[overrideKey(o.EmployeeID.String(), o.LeaveTypeID.String(), o.Year)] = &cp
	return nil
}

func (f *fakeLeaveRepository) FindOverride(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*leave.EmployeeLeaveOverride, error) {
	o, ok := f.overrides[overrideKey(employeeID, leaveTypeID, year)]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeLeaveRepository) CreateHoliday(ctx context.Context, h *leave.Holiday) error {
	for _, existing := range f.holidays {
		if existing.Date.Equal(h.Date) {
			return leaveerrors.ErrHolidayExists
		}
	}
	f.holidays = append(f.holidays, *h)
	return nil
}

func (f *fakeLeaveRepository) ListHolidays(ctx context.Context, companyID string) ([]leave.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeLeaveRepository) DeleteHoliday(ctx context.Context, companyID, id string) error {
	for i, h := range f.holidays {
		if h.ID.String() == id {
			f.holidays = append(f.holidays[:i], f.holidays[i+1:]...)
			return nil
		}
	}
	return leaveerrors.ErrHolidayNotFound
}

func (f *fakeLeaveRepository) ListHolidayDates(ctx context.Context, companyID string, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, h := range f.holidays {
		if calendar.Covers(from, to, h.Date) {
			out = append(out, h.Date)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) CreateRequest(ctx context.Context, r *leave.LeaveRequest) error {
	if f.createRequestFn != nil {
		return f.createRequestFn(ctx, r)
	}
	cp := *r
	f.requests[r.ID.String()] = &cp
	return nil
}

func (f *fakeLeaveRepository) FindRequest(ctx context.Context, companyID, id string) (*leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeLeaveRepository) FindRequestForUpdate(ctx context.Context, companyID, id string) (*leave.LeaveRequest, error) {
	return f.FindRequest(ctx, companyID, id)
}

func (f *fakeLeaveRepository) TransitionRequest(ctx context.Context, r *leave.LeaveRequest, from leave.RequestStatus) error {
	stored, ok := f.requests[r.ID.String()]
	if !ok || stored.Status != from {
		return leaveerrors.ErrAlreadyProcessed
	}
	cp := *r
	f.requests[r.ID.String()] = &cp
	return nil
}

func (f *fakeLeaveRepository) LockEmployeeRequests(ctx context.Context, employeeID string) error {
	f.calls = append(f.calls, "lock:"+employeeID)
	return nil
}

func (f *fakeLeaveRepository) FindActiveRequestsInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	f.calls = append(f.calls, "overlap:"+employeeID)
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID.String() != employeeID {
			continue
		}
		if r.Status != leave.StatusPending && r.Status != leave.StatusApproved {
			continue
		}
		if r.FromDate.After(to) || r.ToDate.Before(from) {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeLeaveRepository) ListRequestsByEmployee(ctx context.Context, companyID, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID.String() == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) ListRequestsByStatus(ctx context.Context, companyID string, status leave.RequestStatus) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) ListApprovedOn(ctx context.Context, companyID string, day time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.Status == leave.StatusApproved && calendar.Covers(r.FromDate, r.ToDate, day) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) FindApprovedCovering(ctx context.Context, employeeID string, day time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID.String() == employeeID && r.Status == leave.StatusApproved && calendar.Covers(r.FromDate, r.ToDate, day) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) CreateEncashment(ctx context.Context, e *leave.LeaveEncashment) error {
	cp := *e
	f.encashments[e.ID.String()] = &cp
	return nil
}

func (f *fakeLeaveRepository) FindEncashmentForUpdate(ctx context.Context, companyID, id string) (*leave.LeaveEncashment, error) {
	e, ok := f.encashments[id]
	if !ok {
		return nil, leaveerrors.ErrEncashmentNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeLeaveRepository) TransitionEncashment(ctx context.Context, e *leave.LeaveEncashment, from leave.EncashmentStatus) error {
	stored, ok := f.encashments[e.ID.String()]
	if !ok || stored.Status != from {
		return leaveerrors.ErrAlreadyProcessed
	}
	cp := *e
	f.encashments[e.ID.String()] = &cp
	return nil
}

// fakeLedger mirrors the guarded UPDATE semantics of the real ledger.
type fakeLedger struct {
	balances    map[string]*leave.LeaveBalance
	lockedReads int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{balances: map[string]*leave.LeaveBalance{}}
}

func (f *fakeLedger) put(b leave.LeaveBalance) {
	f.balances[overrideKey(b.EmployeeID.String(), b.LeaveTypeID.String(), b.Year)] = &b
}

func (f *fakeLedger) WithTx(tx *gorm.DB) leave.Ledger { return f }

func (f *fakeLedger) Get(ctx context.Context, employeeID, leaveTypeID string, year int) (*leave.LeaveBalance, error) {
	b, ok := f.balances[overrideKey(employeeID, leaveTypeID, year)]
	if !ok {
		return nil, leaveerrors.ErrBalanceNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeLedger) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (*leave.LeaveBalance, error) {
	f.lockedReads++
	return f.Get(ctx, employeeID, leaveTypeID, year)
}

func (f *fakeLedger) Debit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	b, ok := f.balances[overrideKey(employeeID, leaveTypeID, year)]
	if !ok {
		return leaveerrors.ErrBalanceNotFound
	}
	if b.Remaining.LessThan(days) {
		return leaveerrors.ErrInsufficientBalance
	}
	b.Used = b.Used.Add(days)
	b.Remaining = b.Remaining.Sub(days)
	return nil
}

func (f *fakeLedger) Credit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	b, ok := f.balances[overrideKey(employeeID, leaveTypeID, year)]
	if !ok {
		return leaveerrors.ErrBalanceNotFound
	}
	if b.Used.LessThan(days) {
		return leaveerrors.ErrCreditExceedsUsed
	}
	b.Used = b.Used.Sub(days)
	b.Remaining = b.Remaining.Add(days)
	return nil
}

func (f *fakeLedger) Upsert(ctx context.Context, b *leave.LeaveBalance) error {
	f.put(*b)
	return nil
}

func (f *fakeLedger) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for _, b := range f.balances {
		if b.EmployeeID.String() == employeeID && b.Year == year {
			out = append(out, *b)
		}
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
