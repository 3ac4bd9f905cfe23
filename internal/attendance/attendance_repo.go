package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "github.com/anubhawdwd/hrms-be/internal/attendance/errors"
	"github.com/anubhawdwd/hrms-be/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ViolationFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindActiveOffice(ctx context.Context, companyID string) (*OfficeLocation, error)
	DeactivateOffices(ctx context.Context, companyID string) error
	CreateOffice(ctx context.Context, o *OfficeLocation) error

	FindActiveOverride(ctx context.Context, companyID, employeeID string, day time.Time) (*EmployeeAttendanceOverride, error)
	FindOverride(ctx context.Context, companyID, employeeID string, validFrom time.Time) (*EmployeeAttendanceOverride, error)
	UpsertOverride(ctx context.Context, o *EmployeeAttendanceOverride) error
	FindDesignationPolicy(ctx context.Context, companyID, designationID string) (*DesignationAttendancePolicy, error)
	UpsertDesignationPolicy(ctx context.Context, p *DesignationAttendancePolicy) error

	EnsureDay(ctx context.Context, companyID, employeeID uuid.UUID, date time.Time) (*AttendanceDay, error)
	FindDay(ctx context.Context, companyID, employeeID string, date time.Time) (*AttendanceDay, error)
	FindDayForUpdate(ctx context.Context, companyID, employeeID string, date time.Time) (*AttendanceDay, error)
	FindDayByID(ctx context.Context, companyID, id string) (*AttendanceDay, error)
	ListDays(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]AttendanceDay, error)
	UpdateDaySummary(ctx context.Context, id uuid.UUID, totalMinutes int, status DayStatus) error
	UpsertDay(ctx context.Context, d *AttendanceDay) error
	AddEvent(ctx context.Context, e *AttendanceEvent) error

	CreateViolation(ctx context.Context, v *AttendanceViolation) error
	ListViolations(ctx context.Context, companyID string, f ViolationFilter) ([]AttendanceViolation, error)
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

func mapNotFound(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func (r *repository) FindActiveOffice(ctx context.Context, companyID string) (*OfficeLocation, error) {
	var offices []OfficeLocation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(1).
		Find(&offices).Error
	if err != nil {
		return nil, err
	}
	if len(offices) == 0 {
		return nil, nil
	}
	return &offices[0], nil
}

func (r *repository) DeactivateOffices(ctx context.Context, companyID string) error {
	return r.db.WithContext(ctx).
		Model(&OfficeLocation{}).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now().UTC()}).Error
}

func (r *repository) CreateOffice(ctx context.Context, o *OfficeLocation) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) FindActiveOverride(ctx context.Context, companyID, employeeID string, day time.Time) (*EmployeeAttendanceOverride, error) {
	var overrides []EmployeeAttendanceOverride
	err := r.db.WithContext(ctx).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("valid_from <= ?", day).
		Where("(valid_to IS NULL OR valid_to >= ?)", day).
		Order("valid_from DESC").
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

func (r *repository) FindOverride(ctx context.Context, companyID, employeeID string, validFrom time.Time) (*EmployeeAttendanceOverride, error) {
	var overrides []EmployeeAttendanceOverride
	err := r.db.WithContext(ctx).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("valid_from = ?", validFrom).
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

func (r *repository) UpsertOverride(ctx context.Context, o *EmployeeAttendanceOverride) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "valid_from"}},
			DoUpdates: clause.AssignmentColumns([]string{"auto_present", "attendance_exempt", "reason", "valid_to", "updated_at"}),
		}).
		Create(o).Error
}

func (r *repository) FindDesignationPolicy(ctx context.Context, companyID, designationID string) (*DesignationAttendancePolicy, error) {
	var policies []DesignationAttendancePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("designation_id = ?", designationID).
		Limit(1).
		Find(&policies).Error
	if err != nil {
		return nil, err
	}
	if len(policies) == 0 {
		return nil, nil
	}
	return &policies[0], nil
}

func (r *repository) UpsertDesignationPolicy(ctx context.Context, p *DesignationAttendancePolicy) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "designation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"auto_present", "attendance_exempt", "updated_at"}),
		}).
		Create(p).Error
}

func withOrderedEvents(db *gorm.DB) *gorm.DB {
	return db.Preload("Events", func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp ASC")
	})
}

// EnsureDay creates the (employee, date) row if missing and returns it locked.
// Concurrent callers converge on the same row through the unique index.
func (r *repository) EnsureDay(ctx context.Context, companyID, employeeID uuid.UUID, date time.Time) (*AttendanceDay, error) {
	now := time.Now().UTC()
	seed := &AttendanceDay{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       date,
		Status:     StatusAbsent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(seed).Error
	if err != nil {
		return nil, err
	}
	return r.FindDayForUpdate(ctx, companyID.String(), employeeID.String(), date)
}

func (r *repository) FindDay(ctx context.Context, companyID, employeeID string, date time.Time) (*AttendanceDay, error) {
	var day AttendanceDay
	err := withOrderedEvents(r.db.WithContext(ctx)).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("date = ?", date).
		First(&day).Error
	if err != nil {
		return nil, mapNotFound(err, attendanceerrors.ErrAttendanceDayNotFound)
	}
	return &day, nil
}

func (r *repository) FindDayForUpdate(ctx context.Context, companyID, employeeID string, date time.Time) (*AttendanceDay, error) {
	var day AttendanceDay
	err := withOrderedEvents(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("date = ?", date).
		First(&day).Error
	if err != nil {
		return nil, mapNotFound(err, attendanceerrors.ErrAttendanceDayNotFound)
	}
	return &day, nil
}

func (r *repository) FindDayByID(ctx context.Context, companyID, id string) (*AttendanceDay, error) {
	var day AttendanceDay
	err := withOrderedEvents(r.db.WithContext(ctx)).
		Scopes(tenant.Scope(companyID)).
		First(&day, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err, attendanceerrors.ErrAttendanceDayNotFound)
	}
	return &day, nil
}

func (r *repository) ListDays(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]AttendanceDay, error) {
	var days []AttendanceDay
	err := withOrderedEvents(r.db.WithContext(ctx)).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&days).Error
	return days, err
}

func (r *repository) UpdateDaySummary(ctx context.Context, id uuid.UUID, totalMinutes int, status DayStatus) error {
	res := r.db.WithContext(ctx).
		Model(&AttendanceDay{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_minutes": totalMinutes,
			"status":        status,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return attendanceerrors.ErrAttendanceDayNotFound
	}
	return nil
}

func (r *repository) UpsertDay(ctx context.Context, d *AttendanceDay) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_minutes", "status", "updated_at"}),
		}).
		Create(d).Error
}

func (r *repository) AddEvent(ctx context.Context, e *AttendanceEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) CreateViolation(ctx context.Context, v *AttendanceViolation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) ListViolations(ctx context.Context, companyID string, f ViolationFilter) ([]AttendanceViolation, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.From != nil && f.To != nil {
		q = q.Where("created_at >= ? AND created_at < ?", *f.From, f.To.AddDate(0, 0, 1))
	}
	var rows []AttendanceViolation
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}
