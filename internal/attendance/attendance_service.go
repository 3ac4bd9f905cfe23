package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "github.com/anubhawdwd/hrms-be/internal/attendance/errors"
	"github.com/anubhawdwd/hrms-be/internal/employee"
	employeeerrors "github.com/anubhawdwd/hrms-be/internal/employee/errors"
	"github.com/anubhawdwd/hrms-be/internal/events"
	"github.com/anubhawdwd/hrms-be/internal/leave"
	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"
	"github.com/anubhawdwd/hrms-be/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EmployeeReader interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

// LeaveLookup is satisfied by leave.Repository.
//
//go:generate mockgen -destination=mock/leave_lookup_mock.go -package=mock . LeaveLookup
type LeaveLookup interface {
	FindApprovedCovering(ctx context.Context, employeeID string, day time.Time) ([]leave.LeaveRequest, error)
}

type OfficeStore interface {
	OfficeProvider
	Invalidate(ctx context.Context, companyID string) error
}

type Service interface {
	CheckIn(ctx context.Context, companyID, employeeID string, req CheckRequest) (CheckResponse, error)
	CheckOut(ctx context.Context, companyID, employeeID string, req CheckRequest) (CheckResponse, error)
	GetDay(ctx context.Context, companyID, employeeID, date string) (AttendanceDayResponse, error)
	GetRange(ctx context.Context, companyID, employeeID, from, to string) ([]AttendanceDayResponse, error)
	ListViolations(ctx context.Context, companyID string, q ViolationQuery) ([]ViolationResponse, error)

	SetOfficeLocation(ctx context.Context, companyID string, req SetOfficeLocationRequest) (OfficeLocationResponse, error)
	GetOfficeLocation(ctx context.Context, companyID string) (OfficeLocationResponse, error)
	UpsertDesignationPolicy(ctx context.Context, companyID string, req UpsertDesignationPolicyRequest) (DesignationPolicyResponse, error)
	UpsertEmployeeOverride(ctx context.Context, companyID string, req UpsertEmployeeOverrideRequest) (EmployeeOverrideResponse, error)
	HRUpsertDay(ctx context.Context, companyID string, req HRUpsertDayRequest) (AttendanceDayResponse, error)
	HRUpdateDay(ctx context.Context, companyID, id string, req HRUpdateDayRequest) (AttendanceDayResponse, error)
	HRAddEvent(ctx context.Context, companyID string, req HRAddEventRequest) (AttendanceEventResponse, error)

	ApplyLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) error
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees EmployeeReader
	leaves    LeaveLookup
	offices   OfficeStore
	geofence  *GeoFence
	policies  *PolicyResolver
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees EmployeeReader,
	leaves LeaveLookup,
	offices OfficeStore,
	settings CompanySettings,
	logger ...*zap.Logger,
) Service {
	var base *zap.Logger
	if len(logger) > 0 {
		base = logger[0]
	}
	l := zap.L().Named("attendance.service")
	if base != nil {
		l = base.Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		leaves:    leaves,
		offices:   offices,
		geofence:  NewGeoFence(offices, settings, repo, base),
		policies:  NewPolicyResolver(repo),
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		return s.logger.With(zap.String("request_id", rid))
	}
	return s.logger
}

func (s *service) CheckIn(ctx context.Context, companyID, employeeID string, req CheckRequest) (CheckResponse, error) {
	log := s.log(ctx)
	log.Debug("check in requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("source", req.Source),
	)

	companyUUID, employeeUUID, err := parseIDs(companyID, employeeID)
	if err != nil {
		return CheckResponse{}, err
	}
	source := Source(req.Source)
	if !source.Valid() {
		return CheckResponse{}, attendanceerrors.ErrInvalidSource
	}

	emp, err := s.employee(ctx, companyID, employeeID)
	if err != nil {
		return CheckResponse{}, err
	}
	today := calendar.DateOf(s.now())

	policy, err := s.policies.Resolve(ctx, emp, today)
	if err != nil {
		return CheckResponse{}, err
	}
	if policy.Exempt {
		log.Info("check in skipped, attendance exempt", zap.String("employee_id", employeeID))
		return CheckResponse{Message: "Attendance exempt employee", Date: calendar.FormatDate(today)}, nil
	}

	covering, err := s.coveringLeave(ctx, employeeID, today)
	if err != nil {
		return CheckResponse{}, err
	}
	if covering.fullDay {
		day, err := s.markDay(ctx, companyUUID, employeeUUID, today, StatusLeave, true)
		if err != nil {
			return CheckResponse{}, err
		}
		log.Info("check in recorded as leave", zap.String("employee_id", employeeID))
		return checkResult("Employee is on approved leave", day), nil
	}
	if policy.AutoPresent {
		day, err := s.markDay(ctx, companyUUID, employeeUUID, today, StatusPresent, false)
		if err != nil {
			return CheckResponse{}, err
		}
		log.Info("auto-present applied", zap.String("employee_id", employeeID))
		return checkResult("Auto-present applied", day), nil
	}

	point, err := requirePoint(req)
	if err != nil {
		return CheckResponse{}, err
	}
	// Violations must survive the rejected check-in, so the fence runs outside the tx.
	if err := s.geofence.Validate(ctx, companyUUID, employeeUUID, point, source); err != nil {
		log.Warn("check in rejected by geofence", zap.String("employee_id", employeeID), zap.Error(err))
		return CheckResponse{}, err
	}

	now := s.now().UTC()
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("check in begin tx failed", zap.Error(tx.Error))
		return CheckResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	day, err := qtx.EnsureDay(ctx, companyUUID, employeeUUID, today)
	if err != nil {
		log.Error("check in load day failed", zap.Error(err))
		return CheckResponse{}, err
	}
	if last := day.LastEvent(); last != nil && last.Type == EventCheckIn {
		log.Warn("check in rejected, already checked in", zap.String("employee_id", employeeID))
		return CheckResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	if err := qtx.AddEvent(ctx, &AttendanceEvent{
		ID:              uuid.New(),
		AttendanceDayID: day.ID,
		Type:            EventCheckIn,
		Source:          source,
		Timestamp:       now,
		CreatedAt:       now,
	}); err != nil {
		log.Error("check in append event failed", zap.Error(err))
		return CheckResponse{}, err
	}
	if err := qtx.UpdateDaySummary(ctx, day.ID, day.TotalMinutes, StatusPresent); err != nil {
		log.Error("check in update day failed", zap.Error(err))
		return CheckResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		log.Error("check in commit failed", zap.Error(err))
		return CheckResponse{}, err
	}

	day.Status = StatusPresent
	log.Info("check in success", zap.String("employee_id", employeeID), zap.String("attendance_day_id", day.ID.String()))
	return checkResult("Checked in successfully", *day), nil
}

func (s *service) CheckOut(ctx context.Context, companyID, employeeID string, req CheckRequest) (CheckResponse, error) {
	log := s.log(ctx)
	log.Debug("check out requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("source", req.Source),
	)

	companyUUID, employeeUUID, err := parseIDs(companyID, employeeID)
	if err != nil {
		return CheckResponse{}, err
	}
	source := Source(req.Source)
	if !source.Valid() {
		return CheckResponse{}, attendanceerrors.ErrInvalidSource
	}

	emp, err := s.employee(ctx, companyID, employeeID)
	if err != nil {
		return CheckResponse{}, err
	}
	today := calendar.DateOf(s.now())

	policy, err := s.policies.Resolve(ctx, emp, today)
	if err != nil {
		return CheckResponse{}, err
	}
	if policy.Exempt {
		return CheckResponse{Message: "Attendance exempt employee", Date: calendar.FormatDate(today)}, nil
	}

	covering, err := s.coveringLeave(ctx, employeeID, today)
	if err != nil {
		return CheckResponse{}, err
	}
	if covering.fullDay {
		return CheckResponse{Message: "Employee is on approved leave", Date: calendar.FormatDate(today)}, nil
	}
	if policy.AutoPresent {
		return CheckResponse{Message: "Auto-present employee", Date: calendar.FormatDate(today)}, nil
	}

	point, err := requirePoint(req)
	if err != nil {
		return CheckResponse{}, err
	}
	if err := s.geofence.Validate(ctx, companyUUID, employeeUUID, point, source); err != nil {
		log.Warn("check out rejected by geofence", zap.String("employee_id", employeeID), zap.Error(err))
		return CheckResponse{}, err
	}

	now := s.now().UTC()
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("check out begin tx failed", zap.Error(tx.Error))
		return CheckResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	day, err := qtx.FindDayForUpdate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, attendanceerrors.ErrAttendanceDayNotFound) {
			return CheckResponse{}, attendanceerrors.ErrCheckOutWithoutCheckIn
		}
		log.Error("check out load day failed", zap.Error(err))
		return CheckResponse{}, err
	}
	last := day.LastEvent()
	if last == nil || last.Type != EventCheckIn {
		log.Warn("check out rejected, not checked in", zap.String("employee_id", employeeID))
		return CheckResponse{}, attendanceerrors.ErrInvalidCheckOut
	}

	total := day.TotalMinutes + MinutesWorked(last.Timestamp, now)
	target := EffectiveTarget(covering.partialMinutes)
	status := DayStatusFor(total, target)

	if err := qtx.AddEvent(ctx, &AttendanceEvent{
		ID:              uuid.New(),
		AttendanceDayID: day.ID,
		Type:            EventCheckOut,
		Source:          source,
		Timestamp:       now,
		CreatedAt:       now,
	}); err != nil {
		log.Error("check out append event failed", zap.Error(err))
		return CheckResponse{}, err
	}
	if err := qtx.UpdateDaySummary(ctx, day.ID, total, status); err != nil {
		log.Error("check out update day failed", zap.Error(err))
		return CheckResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		log.Error("check out commit failed", zap.Error(err))
		return CheckResponse{}, err
	}

	day.TotalMinutes, day.Status = total, status
	log.Info("check out success",
		zap.String("employee_id", employeeID),
		zap.Int("total_minutes", total),
		zap.Int("target_minutes", target),
		zap.String("status", string(status)),
	)
	return checkResult("Checked out successfully", *day), nil
}

func (s *service) GetDay(ctx context.Context, companyID, employeeID, date string) (AttendanceDayResponse, error) {
	if _, _, err := parseIDs(companyID, employeeID); err != nil {
		return AttendanceDayResponse{}, err
	}
	d, err := parseDate(date)
	if err != nil {
		return AttendanceDayResponse{}, err
	}
	if _, err := s.employee(ctx, companyID, employeeID); err != nil {
		return AttendanceDayResponse{}, err
	}

	day, err := s.repo.FindDay(ctx, companyID, employeeID, d)
	if err != nil {
		return AttendanceDayResponse{}, err
	}
	return mapDayToResponse(*day), nil
}

func (s *service) GetRange(ctx context.Context, companyID, employeeID, from, to string) ([]AttendanceDayResponse, error) {
	if _, _, err := parseIDs(companyID, employeeID); err != nil {
		return nil, err
	}
	f, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	t, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if t.Before(f) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}
	if _, err := s.employee(ctx, companyID, employeeID); err != nil {
		return nil, err
	}

	days, err := s.repo.ListDays(ctx, companyID, employeeID, f, t)
	if err != nil {
		s.log(ctx).Error("list attendance days failed", zap.Error(err))
		return nil, err
	}
	resp := make([]AttendanceDayResponse, len(days))
	for i, d := range days {
		resp[i] = mapDayToResponse(d)
	}
	return resp, nil
}

func (s *service) ListViolations(ctx context.Context, companyID string, q ViolationQuery) ([]ViolationResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, attendanceerrors.ErrInvalidCompanyID
	}
	filter := ViolationFilter{EmployeeID: q.EmployeeID}
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
	}
	if (q.From == "") != (q.To == "") {
		return nil, attendanceerrors.ErrIncompleteDateRange
	}
	if q.From != "" {
		from, err := parseDate(q.From)
		if err != nil {
			return nil, err
		}
		to, err := parseDate(q.To)
		if err != nil {
			return nil, err
		}
		if to.Before(from) {
			return nil, attendanceerrors.ErrInvalidDateRange
		}
		filter.From, filter.To = &from, &to
	}

	rows, err := s.repo.ListViolations(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]ViolationResponse, len(rows))
	for i, v := range rows {
		resp[i] = mapViolationToResponse(v)
	}
	return resp, nil
}

func (s *service) employee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return emp, nil
}

func (s *service) coveringLeave(ctx context.Context, employeeID string, day time.Time) (coveringLeave, error) {
	requests, err := s.leaves.FindApprovedCovering(ctx, employeeID, day)
	if err != nil {
		s.log(ctx).Error("load covering leave failed", zap.String("employee_id", employeeID), zap.Error(err))
		return coveringLeave{}, err
	}
	return summariseLeave(requests), nil
}

// markDay sets a day's status without touching its events. resetMinutes
// zeroes the worked total, as full-day leave does.
func (s *service) markDay(ctx context.Context, companyID, employeeID uuid.UUID, date time.Time, status DayStatus, resetMinutes bool) (AttendanceDay, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceDay{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	day, err := qtx.EnsureDay(ctx, companyID, employeeID, date)
	if err != nil {
		return AttendanceDay{}, err
	}
	if resetMinutes {
		day.TotalMinutes = 0
	}
	day.Status = status
	if err := qtx.UpdateDaySummary(ctx, day.ID, day.TotalMinutes, status); err != nil {
		return AttendanceDay{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return AttendanceDay{}, err
	}
	return *day, nil
}

func parseIDs(companyID, employeeID string) (uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, attendanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, attendanceerrors.ErrInvalidEmployeeID
	}
	return companyUUID, employeeUUID, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := calendar.ParseDate(v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func validatePoint(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return attendanceerrors.ErrInvalidLatitude
	}
	if lon < -180 || lon > 180 {
		return attendanceerrors.ErrInvalidLongitude
	}
	return nil
}

func requirePoint(req CheckRequest) (Point, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return Point{}, attendanceerrors.ErrLocationRequired
	}
	if err := validatePoint(*req.Latitude, *req.Longitude); err != nil {
		return Point{}, err
	}
	return Point{Latitude: *req.Latitude, Longitude: *req.Longitude}, nil
}

func checkResult(message string, day AttendanceDay) CheckResponse {
	status := string(day.Status)
	minutes := day.TotalMinutes
	return CheckResponse{
		Message:      message,
		Date:         calendar.FormatDate(day.Date),
		Status:       &status,
		TotalMinutes: &minutes,
	}
}

func mapEventToResponse(e AttendanceEvent) AttendanceEventResponse {
	return AttendanceEventResponse{
		ID:        e.ID.String(),
		Type:      string(e.Type),
		Source:    string(e.Source),
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		IsManual:  e.IsManual,
		Reason:    e.Reason,
	}
}

func mapDayToResponse(d AttendanceDay) AttendanceDayResponse {
	evts := make([]AttendanceEventResponse, len(d.Events))
	for i, e := range d.Events {
		evts[i] = mapEventToResponse(e)
	}
	return AttendanceDayResponse{
		ID:           d.ID.String(),
		EmployeeID:   d.EmployeeID.String(),
		Date:         calendar.FormatDate(d.Date),
		TotalMinutes: d.TotalMinutes,
		Status:       string(d.Status),
		Events:       evts,
	}
}

func mapViolationToResponse(v AttendanceViolation) ViolationResponse {
	return ViolationResponse{
		ID:         v.ID.String(),
		EmployeeID: v.EmployeeID.String(),
		Latitude:   v.Latitude,
		Longitude:  v.Longitude,
		DistanceM:  v.DistanceM,
		Reason:     string(v.Reason),
		Source:     string(v.Source),
		CreatedAt:  v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
