package leave

import (
	"context"
	"time"

	leaveerrors "github.com/anubhawdwd/hrms-be/internal/leave/errors"
	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"
	"github.com/anubhawdwd/hrms-be/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateLeaveType(ctx context.Context, lt *LeaveType) error
	UpdateLeaveType(ctx context.Context, lt *LeaveType) error
	FindLeaveType(ctx context.Context, companyID, id string) (*LeaveType, error)
	ListLeaveTypes(ctx context.Context, companyID string) ([]LeaveType, error)

	UpsertPolicy(ctx context.Context, p *LeavePolicy) error
	FindPolicy(ctx context.Context, companyID, leaveTypeID string, year int) (*LeavePolicy, error)
	ListPolicies(ctx context.Context, companyID string, year int) ([]LeavePolicy, error)

	UpsertOverride(ctx context.Context, o *EmployeeLeaveOverride) error
	FindOverride(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*EmployeeLeaveOverride, error)

	CreateHoliday(ctx context.Context, h *Holiday) error
	ListHolidays(ctx context.Context, companyID string) ([]Holiday, error)
	DeleteHoliday(ctx context.Context, companyID, id string) error
	ListHolidayDates(ctx context.Context, companyID string, from, to time.Time) ([]time.Time, error)

	LockEmployeeRequests(ctx context.Context, employeeID string) error
	CreateRequest(ctx context.Context, r *LeaveRequest) error
	FindRequest(ctx context.Context, companyID, id string) (*LeaveRequest, error)
	FindRequestForUpdate(ctx context.Context, companyID, id string) (*LeaveRequest, error)
	TransitionRequest(ctx context.Context, r *LeaveRequest, from RequestStatus) error
	FindActiveRequestsInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]LeaveRequest, error)
	ListRequestsByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveRequest, error)
	ListRequestsByStatus(ctx context.Context, companyID string, status RequestStatus) ([]LeaveRequest, error)
	ListApprovedOn(ctx context.Context, companyID string, day time.Time) ([]LeaveRequest, error)
	FindApprovedCovering(ctx context.Context, employeeID string, day time.Time) ([]LeaveRequest, error)

	CreateEncashment(ctx context.Context, e *LeaveEncashment) error
	FindEncashmentForUpdate(ctx context.Context, companyID, id string) (*LeaveEncashment, error)
	TransitionEncashment(ctx context.Context, e *LeaveEncashment, from EncashmentStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateLeaveType(ctx context.Context, lt *LeaveType) error {
	err := r.db.WithContext(ctx).Create(lt).Error
	return mapUniqueViolation(err, leaveerrors.ErrLeaveTypeCodeExists)
}

func (r *repository) UpdateLeaveType(ctx context.Context, lt *LeaveType) error {
	res := r.db.WithContext(ctx).
		Model(&LeaveType{}).
		Scopes(tenant.Scope(lt.CompanyID.String())).
		Where("id = ?", lt.ID).
		Updates(map[string]any{
			"name":       lt.Name,
			"is_paid":    lt.IsPaid,
			"is_active":  lt.IsActive,
			"updated_at": lt.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrLeaveTypeNotFound
	}
	return nil
}

func (r *repository) FindLeaveType(ctx context.Context, companyID, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&lt, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	return &lt, nil
}

func (r *repository) ListLeaveTypes(ctx context.Context, companyID string) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) UpsertPolicy(ctx context.Context, p *LeavePolicy) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "leave_type_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"yearly_allocation",
				"allow_carry_forward",
				"max_carry_forward",
				"allow_encashment",
				"probation_allowed",
				"gender_restriction",
				"monthly_accrual",
				"sandwich_rule",
				"updated_at",
			}),
		}).
		Create(p).Error
}

func (r *repository) FindPolicy(ctx context.Context, companyID, leaveTypeID string, year int) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("leave_type_id = ? AND year = ?", leaveTypeID, year).
		First(&p).Error
	if err != nil {
		return nil, mapNotFound(err, leaveerrors.ErrPolicyNotFound)
	}
	return &p, nil
}

func (r *repository) ListPolicies(ctx context.Context, companyID string, year int) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("year = ?", year).
		Order("created_at ASC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) UpsertOverride(ctx context.Context, o *EmployeeLeaveOverride) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "leave_type_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"allow_sandwich", "allow_encashment", "extra_allocation", "updated_at"}),
		}).
		Create(o).Error
}

func (r *repository) FindOverride(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*EmployeeLeaveOverride, error) {
	var overrides []EmployeeLeaveOverride
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		Limit(1).
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return nil, nil
	}
	return &overrides[0], nil
}

func (r *repository) CreateHoliday(ctx context.Context, h *Holiday) error {
	err := r.db.WithContext(ctx).Create(h).Error
	return mapUniqueViolation(err, leaveerrors.ErrHolidayExists)
}

func (r *repository) ListHolidays(ctx context.Context, companyID string) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) DeleteHoliday(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Holiday{}, "id = ?", id)
	if res.Error != nil {
		return mapNotFound(res.Error, leaveerrors.ErrHolidayNotFound)
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrHolidayNotFound
	}
	return nil
}

func (r *repository) ListHolidayDates(ctx context.Context, companyID string, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Scopes(tenant.Scope(companyID)).
		Where("date BETWEEN ? AND ?", calendar.DateOf(from), calendar.DateOf(to)).
		Pluck("date", &dates).Error
	return dates, err
}

// LockEmployeeRequests serializes request creation for one employee until
// the surrounding transaction ends.
func (r *repository) LockEmployeeRequests(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "leave_request:"+employeeID).Error
}

func (r *repository) CreateRequest(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindRequest(ctx context.Context, companyID, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err, leaveerrors.ErrLeaveNotFound)
	}
	return &req, nil
}

// FindRequestForUpdate locks the row until the surrounding transaction ends.
func (r *repository) FindRequestForUpdate(ctx context.Context, companyID, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err, leaveerrors.ErrLeaveNotFound)
	}
	return &req, nil
}

// TransitionRequest persists req's decision fields only if the row is still in
// from. A concurrent transition that won first leaves zero rows affected.
func (r *repository) TransitionRequest(ctx context.Context, req *LeaveRequest, from RequestStatus) error {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", req.ID, from).
		Updates(map[string]any{
			"status":          req.Status,
			"approved_by_id":  req.ApprovedByID,
			"approved_at":     req.ApprovedAt,
			"decision_reason": req.DecisionReason,
			"updated_at":      req.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrAlreadyProcessed
	}
	return nil
}

func (r *repository) FindActiveRequestsInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []RequestStatus{StatusPending, StatusApproved}).
		Where("from_date <= ? AND to_date >= ?", calendar.DateOf(to), calendar.DateOf(from)).
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) ListRequestsByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("from_date DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) ListRequestsByStatus(ctx context.Context, companyID string, status RequestStatus) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) ListApprovedOn(ctx context.Context, companyID string, day time.Time) ([]LeaveRequest, error) {
	d := calendar.DateOf(day)
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusApproved).
		Where("from_date <= ? AND to_date >= ?", d, d).
		Order("employee_id ASC").
		Find(&reqs).Error
	return reqs, err
}

// FindApprovedCovering is the lookup attendance uses to reconcile a day.
func (r *repository) FindApprovedCovering(ctx context.Context, employeeID string, day time.Time) ([]LeaveRequest, error) {
	d := calendar.DateOf(day)
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("from_date <= ? AND to_date >= ?", d, d).
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) CreateEncashment(ctx context.Context, e *LeaveEncashment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindEncashmentForUpdate(ctx context.Context, companyID, id string) (*LeaveEncashment, error) {
	var e LeaveEncashment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err, leaveerrors.ErrEncashmentNotFound)
	}
	return &e, nil
}

func (r *repository) TransitionEncashment(ctx context.Context, e *LeaveEncashment, from EncashmentStatus) error {
	res := r.db.WithContext(ctx).
		Model(&LeaveEncashment{}).
		Where("id = ? AND status = ?", e.ID, from).
		Updates(map[string]any{
			"status":         e.Status,
			"approved_by_id": e.ApprovedByID,
			"approved_at":    e.ApprovedAt,
			"updated_at":     e.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrAlreadyProcessed
	}
	return nil
}
