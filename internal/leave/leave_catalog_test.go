package leave_test

import (
	"context"
	"testing"

	"github.com/anubhawdwd/hrms-be/internal/leave"
	leaveerrors "github.com/anubhawdwd/hrms-be/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveService_LeaveTypes(t *testing.T) {
	ctx := context.Background()

	t.Run("code is trimmed and upper-cased", func(t *testing.T) {
		fx := newLeaveFixture(t)
		resp, err := fx.service.CreateLeaveType(ctx, fx.companyID, leave.CreateLeaveTypeRequest{Name: " Sick Leave ", Code: " sl "})
		require.NoError(t, err)
		assert.Equal(t, "SL", resp.Code)
		assert.Equal(t, "Sick Leave", resp.Name)
		assert.True(t, resp.IsPaid)
		assert.True(t, resp.IsActive)
	})

	t.Run("blank name", func(t *testing.T) {
		fx := newLeaveFixture(t)
		_, err := fx.service.CreateLeaveType(ctx, fx.companyID, leave.CreateLeaveTypeRequest{Name: "  ", Code: "SL"})
		assert.ErrorIs(t, err, leaveerrors.ErrNameRequired)
	})

	t.Run("duplicate code surfaces conflict", func(t *testing.T) {
		fx := newLeaveFixture(t)
		fx.repo.createLeaveTypeFn = func(ctx context.Context, lt *leave.LeaveType) error {
			return leaveerrors.ErrLeaveTypeCodeExists
		}
		_, err := fx.service.CreateLeaveType(ctx, fx.companyID, leave.CreateLeaveTypeRequest{Name: "Casual", Code: "cl"})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveTypeCodeExists)
	})

	t.Run("update only touches mutable fields", func(t *testing.T) {
		fx := newLeaveFixture(t)
		inactive := false
		resp, err := fx.service.UpdateLeaveType(ctx, fx.companyID, fx.leaveTypeID, leave.UpdateLeaveTypeRequest{IsActive: &inactive})
		require.NoError(t, err)
		assert.Equal(t, "CL", resp.Code)
		assert.Equal(t, "Casual Leave", resp.Name)
		assert.False(t, resp.IsActive)
		assert.False(t, fx.repo.leaveTypes[fx.leaveTypeID].IsActive)
	})
}

func TestLeaveService_UpsertPolicy(t *testing.T) {
	ctx := context.Background()
	gender := func(v string) *string { return &v }

	tests := []struct {
		name    string
		mutate  func(r *leave.UpsertPolicyRequest)
		wantErr error
	}{
		{"year before 2000", func(r *leave.UpsertPolicyRequest) { r.Year = 1999 }, leaveerrors.ErrInvalidYear},
		{"negative allocation", func(r *leave.UpsertPolicyRequest) { r.YearlyAllocation = dec("-1") }, leaveerrors.ErrNegativeAllocation},
		{"negative carry forward", func(r *leave.UpsertPolicyRequest) {
			v := dec("-2")
			r.AllowCarryForward = true
			r.MaxCarryForward = &v
		}, leaveerrors.ErrNegativeCarryForward},
		{"unsupported gender", func(r *leave.UpsertPolicyRequest) { r.GenderRestriction = gender("OTHER") }, leaveerrors.ErrInvalidGenderRestriction},
		{"unknown leave type", func(r *leave.UpsertPolicyRequest) { r.LeaveTypeID = uuid.NewString() }, leaveerrors.ErrLeaveTypeNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fx := newLeaveFixture(t)
			req := leave.UpsertPolicyRequest{LeaveTypeID: fx.leaveTypeID, Year: 2025, YearlyAllocation: dec("12")}
			tc.mutate(&req)
			_, err := fx.service.UpsertPolicy(ctx, fx.companyID, req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("existing policy keeps its id", func(t *testing.T) {
		fx := newLeaveFixture(t)
		existing := fx.repo.policies[policyKey(fx.leaveTypeID, 2024)]

		resp, err := fx.service.UpsertPolicy(ctx, fx.companyID, leave.UpsertPolicyRequest{
			LeaveTypeID:       fx.leaveTypeID,
			Year:              2024,
			YearlyAllocation:  dec("18"),
			GenderRestriction: gender("female"),
		})
		require.NoError(t, err)
		assert.Equal(t, existing.ID.String(), resp.ID)
		assert.Equal(t, "18", resp.YearlyAllocation)
		require.NotNil(t, resp.GenderRestriction)
		assert.Equal(t, "FEMALE", *resp.GenderRestriction)
		assert.True(t, resp.ProbationAllowed)
	})
}

func TestLeaveService_Holidays(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(t)

	h, err := fx.service.CreateHoliday(ctx, fx.companyID, leave.CreateHolidayRequest{Name: "Republic Day", Date: "2024-01-26"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-26", h.Date)

	_, err = fx.service.CreateHoliday(ctx, fx.companyID, leave.CreateHolidayRequest{Name: "Again", Date: "2024-01-26"})
	assert.ErrorIs(t, err, leaveerrors.ErrHolidayExists)

	_, err = fx.service.CreateHoliday(ctx, fx.companyID, leave.CreateHolidayRequest{Name: "Bad", Date: "26-01-2024"})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)

	require.NoError(t, fx.service.DeleteHoliday(ctx, fx.companyID, h.ID))
	assert.ErrorIs(t, fx.service.DeleteHoliday(ctx, fx.companyID, h.ID), leaveerrors.ErrHolidayNotFound)
}

func TestLeaveService_UpsertOverride(t *testing.T) {
	ctx := context.Background()

	t.Run("negative extra allocation", func(t *testing.T) {
		fx := newLeaveFixture(t)
		extra := dec("-1")
		_, err := fx.service.UpsertOverride(ctx, fx.companyID, leave.UpsertOverrideRequest{
			EmployeeID: fx.employeeID, LeaveTypeID: fx.leaveTypeID, Year: 2024, ExtraAllocation: &extra,
		})
		assert.ErrorIs(t, err, leaveerrors.ErrNegativeAllocation)
	})

	t.Run("stored and reused", func(t *testing.T) {
		fx := newLeaveFixture(t)
		first, err := fx.service.UpsertOverride(ctx, fx.companyID, leave.UpsertOverrideRequest{
			EmployeeID: fx.employeeID, LeaveTypeID: fx.leaveTypeID, Year: 2024, AllowSandwich: boolPtr(false),
		})
		require.NoError(t, err)

		second, err := fx.service.UpsertOverride(ctx, fx.companyID, leave.UpsertOverrideRequest{
			EmployeeID: fx.employeeID, LeaveTypeID: fx.leaveTypeID, Year: 2024, AllowEncashment: boolPtr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Nil(t, second.AllowSandwich)
	})
}

func TestLeaveService_AllocateBalance(t *testing.T) {
	ctx := context.Background()

	seedPrevYear := func(fx *leaveFixture, max *string, remaining string) {
		p := &leave.LeavePolicy{
			ID:                uuid.New(),
			LeaveTypeID:       uuid.MustParse(fx.leaveTypeID),
			Year:              2023,
			YearlyAllocation:  dec("12"),
			AllowCarryForward: true,
		}
		if max != nil {
			v := dec(*max)
			p.MaxCarryForward = &v
		}
		fx.repo.policies[policyKey(fx.leaveTypeID, 2023)] = p
		fx.ledger.put(leave.LeaveBalance{
			EmployeeID:  uuid.MustParse(fx.employeeID),
			LeaveTypeID: uuid.MustParse(fx.leaveTypeID),
			Year:        2023,
			Allocated:   dec("12"),
			Used:        dec("12").Sub(dec(remaining)),
			Remaining:   dec(remaining),
		})
	}
	req := func(fx *leaveFixture, asOf string) leave.AllocateBalanceRequest {
		return leave.AllocateBalanceRequest{EmployeeID: fx.employeeID, LeaveTypeID: fx.leaveTypeID, Year: 2024, AsOf: asOf}
	}

	t.Run("carry forward capped by previous policy", func(t *testing.T) {
		fx := newLeaveFixture(t)
		max := "5"
		seedPrevYear(fx, &max, "8")
		expectTx(t, fx.mock, true)

		resp, err := fx.service.AllocateBalance(ctx, fx.companyID, req(fx, ""))
		require.NoError(t, err)
		assert.Equal(t, "12", resp.Allocated)
		assert.Equal(t, "5", resp.CarriedForward)
		assert.Equal(t, "17", resp.Remaining)
		assert.True(t, fx.balance(t).Consistent())
		assert.Equal(t, 1, fx.ledger.lockedReads, "current year balance is read under lock")
	})

	t.Run("uncapped carry forward", func(t *testing.T) {
		fx := newLeaveFixture(t)
		seedPrevYear(fx, nil, "8")
		expectTx(t, fx.mock, true)

		resp, err := fx.service.AllocateBalance(ctx, fx.companyID, req(fx, ""))
		require.NoError(t, err)
		assert.Equal(t, "8", resp.CarriedForward)
	})

	t.Run("monthly accrual pro-rates including override extra", func(t *testing.T) {
		fx := newLeaveFixture(t)
		fx.repo.policies[policyKey(fx.leaveTypeID, 2024)].MonthlyAccrual = true
		extra := dec("6")
		fx.repo.overrides[overrideKey(fx.employeeID, fx.leaveTypeID, 2024)] = &leave.EmployeeLeaveOverride{ExtraAllocation: &extra}
		expectTx(t, fx.mock, true)

		resp, err := fx.service.AllocateBalance(ctx, fx.companyID, req(fx, "2024-04-15"))
		require.NoError(t, err)
		assert.Equal(t, "6", resp.Allocated)
		assert.Equal(t, "0", resp.CarriedForward)
	})

	t.Run("used days are preserved", func(t *testing.T) {
		fx := newLeaveFixture(t)
		b := fx.balance(t)
		b.Used = dec("3")
		b.Remaining = dec("7")
		fx.ledger.put(b)
		expectTx(t, fx.mock, true)

		resp, err := fx.service.AllocateBalance(ctx, fx.companyID, req(fx, ""))
		require.NoError(t, err)
		assert.Equal(t, "3", resp.Used)
		assert.Equal(t, "9", resp.Remaining)
	})

	t.Run("allocation below used", func(t *testing.T) {
		fx := newLeaveFixture(t)
		fx.repo.policies[policyKey(fx.leaveTypeID, 2024)].YearlyAllocation = dec("2")
		b := fx.balance(t)
		b.Used = dec("5")
		fx.ledger.put(b)
		expectTx(t, fx.mock, false)

		_, err := fx.service.AllocateBalance(ctx, fx.companyID, req(fx, ""))
		assert.ErrorIs(t, err, leaveerrors.ErrAllocationBelowUsed)
	})
}

func TestProRate(t *testing.T) {
	assert.Equal(t, "1", leave.ProRate(dec("12"), 1).String())
	assert.Equal(t, "8.75", leave.ProRate(dec("15"), 7).String())
	assert.Equal(t, "15", leave.ProRate(dec("15"), 12).String())
}
