package leave

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anubhawdwd/hrms-be/internal/employee"
	employeeerrors "github.com/anubhawdwd/hrms-be/internal/employee/errors"
	leaveerrors "github.com/anubhawdwd/hrms-be/internal/leave/errors"
	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const minPolicyYear = 2000

func (s *service) CreateLeaveType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return LeaveTypeResponse{}, leaveerrors.ErrNameRequired
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return LeaveTypeResponse{}, leaveerrors.ErrCodeRequired
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}
	now := s.now().UTC()
	lt := &LeaveType{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Code:      code,
		Name:      name,
		IsPaid:    isPaid,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateLeaveType(ctx, lt); err != nil {
		s.log(ctx).Warn("create leave type failed", zap.String("code", code), zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	s.log(ctx).Info("create leave type success", zap.String("leave_type_id", lt.ID.String()), zap.String("code", code))
	return mapLeaveTypeToResponse(*lt), nil
}

// UpdateLeaveType only touches name, is_paid and is_active; code is immutable.
func (s *service) UpdateLeaveType(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveTypeResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	lt, err := s.repo.FindLeaveType(ctx, companyID, id)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return LeaveTypeResponse{}, leaveerrors.ErrNameRequired
		}
		lt.Name = name
	}
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}
	lt.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateLeaveType(ctx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}
	return mapLeaveTypeToResponse(*lt), nil
}

func (s *service) ListLeaveTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error) {
	types, err := s.repo.ListLeaveTypes(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapLeaveTypeToResponse(lt)
	}
	return resp, nil
}

func (s *service) UpsertPolicy(ctx context.Context, companyID string, req UpsertPolicyRequest) (PolicyResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PolicyResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return PolicyResponse{}, leaveerrors.ErrInvalidLeaveTypeID
	}
	if err := validatePolicy(req); err != nil {
		return PolicyResponse{}, err
	}

	if _, err := s.repo.FindLeaveType(ctx, companyID, req.LeaveTypeID); err != nil {
		return PolicyResponse{}, err
	}

	now := s.now().UTC()
	p := &LeavePolicy{
		ID:                uuid.New(),
		CompanyID:         companyUUID,
		LeaveTypeID:       leaveTypeUUID,
		Year:              req.Year,
		YearlyAllocation:  req.YearlyAllocation,
		AllowCarryForward: req.AllowCarryForward,
		AllowEncashment:   req.AllowEncashment,
		ProbationAllowed:  true,
		MonthlyAccrual:    req.MonthlyAccrual,
		SandwichRule:      req.SandwichRule,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.AllowCarryForward {
		p.MaxCarryForward = req.MaxCarryForward
	}
	if req.ProbationAllowed != nil {
		p.ProbationAllowed = *req.ProbationAllowed
	}
	if req.GenderRestriction != nil {
		g := strings.ToUpper(strings.TrimSpace(*req.GenderRestriction))
		p.GenderRestriction = &g
	}

	existing, err := s.repo.FindPolicy(ctx, companyID, req.LeaveTypeID, req.Year)
	switch {
	case err == nil:
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	case !errors.Is(err, leaveerrors.ErrPolicyNotFound):
		return PolicyResponse{}, err
	}

	if err := s.repo.UpsertPolicy(ctx, p); err != nil {
		s.log(ctx).Error("upsert leave policy failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	s.log(ctx).Info("upsert leave policy success",
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
	)
	return mapPolicyToResponse(*p), nil
}

func validatePolicy(req UpsertPolicyRequest) error {
	if req.Year < minPolicyYear {
		return leaveerrors.ErrInvalidYear
	}
	if req.YearlyAllocation.IsNegative() {
		return leaveerrors.ErrNegativeAllocation
	}
	if req.AllowCarryForward && req.MaxCarryForward != nil && req.MaxCarryForward.IsNegative() {
		return leaveerrors.ErrNegativeCarryForward
	}
	if req.GenderRestriction != nil {
		switch strings.ToUpper(strings.TrimSpace(*req.GenderRestriction)) {
		case employee.GenderMale, employee.GenderFemale:
		default:
			return leaveerrors.ErrInvalidGenderRestriction
		}
	}
	return nil
}

func (s *service) ListPolicies(ctx context.Context, companyID string, year int) ([]PolicyResponse, error) {
	if year == 0 {
		year = s.now().UTC().Year()
	}
	policies, err := s.repo.ListPolicies(ctx, companyID, year)
	if err != nil {
		return nil, err
	}
	resp := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapPolicyToResponse(p)
	}
	return resp, nil
}

func (s *service) UpsertOverride(ctx context.Context, companyID string, req UpsertOverrideRequest) (OverrideResponse, error) {
	companyUUID, employeeUUID, leaveTypeUUID, err := validateApplyIDs(companyID, req.EmployeeID, req.LeaveTypeID)
	if err != nil {
		return OverrideResponse{}, err
	}
	if req.Year < minPolicyYear {
		return OverrideResponse{}, leaveerrors.ErrInvalidYear
	}
	if req.ExtraAllocation != nil && req.ExtraAllocation.IsNegative() {
		return OverrideResponse{}, leaveerrors.ErrNegativeAllocation
	}

	if _, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID); err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return OverrideResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return OverrideResponse{}, err
	}
	if _, err := s.repo.FindLeaveType(ctx, companyID, req.LeaveTypeID); err != nil {
		return OverrideResponse{}, err
	}

	now := s.now().UTC()
	o := &EmployeeLeaveOverride{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		EmployeeID:      employeeUUID,
		LeaveTypeID:     leaveTypeUUID,
		Year:            req.Year,
		AllowSandwich:   req.AllowSandwich,
		AllowEncashment: req.AllowEncashment,
		ExtraAllocation: req.ExtraAllocation,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	existing, err := s.repo.FindOverride(ctx, companyID, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return OverrideResponse{}, err
	}
	if existing != nil {
		o.ID = existing.ID
		o.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.UpsertOverride(ctx, o); err != nil {
		s.log(ctx).Error("upsert leave override failed", zap.Error(err))
		return OverrideResponse{}, err
	}
	s.log(ctx).Info("upsert leave override success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
	)
	return mapOverrideToResponse(*o), nil
}

func (s *service) CreateHoliday(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return HolidayResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return HolidayResponse{}, leaveerrors.ErrNameRequired
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	h := &Holiday{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      name,
		Date:      date,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateHoliday(ctx, h); err != nil {
		s.log(ctx).Warn("create holiday failed", zap.String("date", req.Date), zap.Error(err))
		return HolidayResponse{}, err
	}
	return mapHolidayToResponse(*h), nil
}

func (s *service) ListHolidays(ctx context.Context, companyID string) ([]HolidayResponse, error) {
	holidays, err := s.repo.ListHolidays(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapHolidayToResponse(h)
	}
	return resp, nil
}

func (s *service) DeleteHoliday(ctx context.Context, companyID, id string) error {
	if err := s.repo.DeleteHoliday(ctx, companyID, id); err != nil {
		return err
	}
	s.log(ctx).Info("delete holiday success", zap.String("holiday_id", id))
	return nil
}

// AllocateBalance (re)computes allocated and carried-forward days for a year
// while preserving whatever has already been used.
func (s *service) AllocateBalance(ctx context.Context, companyID string, req AllocateBalanceRequest) (BalanceResponse, error) {
	log := s.log(ctx)
	log.Debug("allocate leave balance requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
	)

	companyUUID, employeeUUID, leaveTypeUUID, err := validateApplyIDs(companyID, req.EmployeeID, req.LeaveTypeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	if req.Year < minPolicyYear {
		return BalanceResponse{}, leaveerrors.ErrInvalidYear
	}
	asOf := calendar.DateOf(s.now())
	if req.AsOf != "" {
		if asOf, err = parseDate(req.AsOf); err != nil {
			return BalanceResponse{}, err
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("allocate leave balance begin tx failed", zap.Error(tx.Error))
		return BalanceResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ltx := s.ledger.WithTx(tx)

	if _, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID); err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return BalanceResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return BalanceResponse{}, err
	}

	effective, err := NewPolicyResolver(qtx).Effective(ctx, companyID, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return BalanceResponse{}, err
	}
	allocated := effective.Allocation
	if effective.Policy.MonthlyAccrual && asOf.Year() == req.Year {
		allocated = ProRate(allocated, asOf.Month())
	}

	carried, err := s.carryForward(ctx, qtx, ltx, companyID, req.EmployeeID, req.LeaveTypeID, req.Year-1)
	if err != nil {
		return BalanceResponse{}, err
	}

	used := decimal.Zero
	current, err := ltx.GetForUpdate(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	switch {
	case err == nil:
		used = current.Used
	case !errors.Is(err, leaveerrors.ErrBalanceNotFound):
		return BalanceResponse{}, err
	}

	remaining := allocated.Add(carried).Sub(used)
	if remaining.IsNegative() {
		log.Warn("allocate leave balance below used",
			zap.String("allocated", allocated.String()),
			zap.String("used", used.String()),
		)
		return BalanceResponse{}, leaveerrors.ErrAllocationBelowUsed
	}

	now := s.now().UTC()
	b := &LeaveBalance{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeID:     employeeUUID,
		LeaveTypeID:    leaveTypeUUID,
		Year:           req.Year,
		Allocated:      allocated,
		Used:           used,
		CarriedForward: carried,
		Remaining:      remaining,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if current != nil {
		b.ID = current.ID
		b.CreatedAt = current.CreatedAt
	}
	if err := ltx.Upsert(ctx, b); err != nil {
		log.Error("allocate leave balance persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("allocate leave balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	log.Info("allocate leave balance success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("allocated", allocated.String()),
		zap.String("carried_forward", carried.String()),
	)
	return mapBalanceToResponse(*b), nil
}

// carryForward is the previous year's remaining balance, capped by that
// year's policy. It is zero when the policy forbids carry-forward or either
// record is missing.
func (s *service) carryForward(ctx context.Context, qtx Repository, ltx Ledger, companyID, employeeID, leaveTypeID string, prevYear int) (decimal.Decimal, error) {
	prevPolicy, err := qtx.FindPolicy(ctx, companyID, leaveTypeID, prevYear)
	if errors.Is(err, leaveerrors.ErrPolicyNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	if !prevPolicy.AllowCarryForward {
		return decimal.Zero, nil
	}

	prev, err := ltx.Get(ctx, employeeID, leaveTypeID, prevYear)
	if errors.Is(err, leaveerrors.ErrBalanceNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	if !prev.Remaining.IsPositive() {
		return decimal.Zero, nil
	}
	if prevPolicy.MaxCarryForward != nil {
		return decimal.Min(prev.Remaining, *prevPolicy.MaxCarryForward), nil
	}
	return prev.Remaining, nil
}

// ProRate scales a yearly allocation by the months elapsed through month.
func ProRate(yearly decimal.Decimal, month time.Month) decimal.Decimal {
	return yearly.Mul(decimal.NewFromInt(int64(month))).Div(decimal.NewFromInt(12)).Round(2)
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func mapLeaveTypeToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:       lt.ID.String(),
		Code:     lt.Code,
		Name:     lt.Name,
		IsPaid:   lt.IsPaid,
		IsActive: lt.IsActive,
	}
}

func mapPolicyToResponse(p LeavePolicy) PolicyResponse {
	resp := PolicyResponse{
		ID:                p.ID.String(),
		LeaveTypeID:       p.LeaveTypeID.String(),
		Year:              p.Year,
		YearlyAllocation:  p.YearlyAllocation.String(),
		AllowCarryForward: p.AllowCarryForward,
		AllowEncashment:   p.AllowEncashment,
		ProbationAllowed:  p.ProbationAllowed,
		GenderRestriction: p.GenderRestriction,
		MonthlyAccrual:    p.MonthlyAccrual,
		SandwichRule:      p.SandwichRule,
	}
	if p.MaxCarryForward != nil {
		v := p.MaxCarryForward.String()
		resp.MaxCarryForward = &v
	}
	return resp
}

func mapOverrideToResponse(o EmployeeLeaveOverride) OverrideResponse {
	resp := OverrideResponse{
		ID:              o.ID.String(),
		EmployeeID:      o.EmployeeID.String(),
		LeaveTypeID:     o.LeaveTypeID.String(),
		Year:            o.Year,
		AllowSandwich:   o.AllowSandwich,
		AllowEncashment: o.AllowEncashment,
	}
	if o.ExtraAllocation != nil {
		v := o.ExtraAllocation.String()
		resp.ExtraAllocation = &v
	}
	return resp
}

func mapHolidayToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Name: h.Name,
		Date: calendar.FormatDate(h.Date),
	}
}
