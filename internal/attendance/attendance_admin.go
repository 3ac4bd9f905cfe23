package attendance

import (
	"context"
	"strings"
	"time"

	attendanceerrors "github.com/anubhawdwd/hrms-be/internal/attendance/errors"
	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SetOfficeLocation replaces the active office in one transaction.
func (s *service) SetOfficeLocation(ctx context.Context, companyID string, req SetOfficeLocationRequest) (OfficeLocationResponse, error) {
	log := s.log(ctx)
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return OfficeLocationResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	if req.Latitude == nil || req.Longitude == nil {
		return OfficeLocationResponse{}, attendanceerrors.ErrLocationRequired
	}
	if err := validatePoint(*req.Latitude, *req.Longitude); err != nil {
		return OfficeLocationResponse{}, err
	}
	if req.RadiusM <= 0 {
		return OfficeLocationResponse{}, attendanceerrors.ErrInvalidRadius
	}

	now := s.now().UTC()
	office := &OfficeLocation{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		RadiusM:   req.RadiusM,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("set office location begin tx failed", zap.Error(tx.Error))
		return OfficeLocationResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeactivateOffices(ctx, companyID); err != nil {
		log.Error("deactivate office locations failed", zap.Error(err))
		return OfficeLocationResponse{}, err
	}
	if err := qtx.CreateOffice(ctx, office); err != nil {
		log.Error("create office location failed", zap.Error(err))
		return OfficeLocationResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		log.Error("set office location commit failed", zap.Error(err))
		return OfficeLocationResponse{}, err
	}

	if err := s.offices.Invalidate(ctx, companyID); err != nil {
		log.Error("invalidate office cache failed", zap.String("company_id", companyID), zap.Error(err))
	}
	log.Info("office location set",
		zap.String("company_id", companyID),
		zap.Float64("latitude", office.Latitude),
		zap.Float64("longitude", office.Longitude),
		zap.Int("radius_m", office.RadiusM),
	)
	return mapOfficeToResponse(*office), nil
}

func (s *service) GetOfficeLocation(ctx context.Context, companyID string) (OfficeLocationResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return OfficeLocationResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	office, err := s.offices.ActiveOffice(ctx, companyID)
	if err != nil {
		return OfficeLocationResponse{}, err
	}
	if office == nil {
		return OfficeLocationResponse{}, attendanceerrors.ErrOfficeNotConfigured
	}
	return mapOfficeToResponse(*office), nil
}

func (s *service) UpsertDesignationPolicy(ctx context.Context, companyID string, req UpsertDesignationPolicyRequest) (DesignationPolicyResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DesignationPolicyResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	designationUUID, err := uuid.Parse(req.DesignationID)
	if err != nil {
		return DesignationPolicyResponse{}, attendanceerrors.ErrInvalidDesignationID
	}
	if req.AutoPresent && req.AttendanceExempt {
		return DesignationPolicyResponse{}, attendanceerrors.ErrConflictingFlags
	}

	now := s.now().UTC()
	p := &DesignationAttendancePolicy{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		DesignationID:    designationUUID,
		AutoPresent:      req.AutoPresent,
		AttendanceExempt: req.AttendanceExempt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	existing, err := s.repo.FindDesignationPolicy(ctx, companyID, req.DesignationID)
	if err != nil {
		return DesignationPolicyResponse{}, err
	}
	if existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.UpsertDesignationPolicy(ctx, p); err != nil {
		s.log(ctx).Error("upsert designation attendance policy failed", zap.Error(err))
		return DesignationPolicyResponse{}, err
	}
	s.log(ctx).Info("designation attendance policy saved",
		zap.String("designation_id", req.DesignationID),
		zap.Bool("auto_present", p.AutoPresent),
		zap.Bool("attendance_exempt", p.AttendanceExempt),
	)
	return DesignationPolicyResponse{
		ID:               p.ID.String(),
		DesignationID:    p.DesignationID.String(),
		AutoPresent:      p.AutoPresent,
		AttendanceExempt: p.AttendanceExempt,
	}, nil
}

func (s *service) UpsertEmployeeOverride(ctx context.Context, companyID string, req UpsertEmployeeOverrideRequest) (EmployeeOverrideResponse, error) {
	companyUUID, employeeUUID, err := parseIDs(companyID, req.EmployeeID)
	if err != nil {
		return EmployeeOverrideResponse{}, err
	}
	if req.AutoPresent && req.AttendanceExempt {
		return EmployeeOverrideResponse{}, attendanceerrors.ErrConflictingFlags
	}
	validFrom, err := parseDate(req.ValidFrom)
	if err != nil {
		return EmployeeOverrideResponse{}, err
	}
	var validTo *time.Time
	if req.ValidTo != nil && strings.TrimSpace(*req.ValidTo) != "" {
		t, err := parseDate(*req.ValidTo)
		if err != nil {
			return EmployeeOverrideResponse{}, err
		}
		if t.Before(validFrom) {
			return EmployeeOverrideResponse{}, attendanceerrors.ErrInvalidValidityWindow
		}
		validTo = &t
	}
	if _, err := s.employee(ctx, companyID, req.EmployeeID); err != nil {
		return EmployeeOverrideResponse{}, err
	}

	now := s.now().UTC()
	o := &EmployeeAttendanceOverride{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		EmployeeID:       employeeUUID,
		AutoPresent:      req.AutoPresent,
		AttendanceExempt: req.AttendanceExempt,
		Reason:           req.Reason,
		ValidFrom:        validFrom,
		ValidTo:          validTo,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	existing, err := s.repo.FindOverride(ctx, companyID, req.EmployeeID, validFrom)
	if err != nil {
		return EmployeeOverrideResponse{}, err
	}
	if existing != nil {
		o.ID = existing.ID
		o.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.UpsertOverride(ctx, o); err != nil {
		s.log(ctx).Error("upsert attendance override failed", zap.Error(err))
		return EmployeeOverrideResponse{}, err
	}
	s.log(ctx).Info("attendance override saved",
		zap.String("employee_id", req.EmployeeID),
		zap.String("valid_from", req.ValidFrom),
	)
	return mapOverrideToResponse(*o), nil
}

// HRUpsertDay writes a day verdict directly; events are left untouched.
func (s *service) HRUpsertDay(ctx context.Context, companyID string, req HRUpsertDayRequest) (AttendanceDayResponse, error) {
	companyUUID, employeeUUID, err := parseIDs(companyID, req.EmployeeID)
	if err != nil {
		return AttendanceDayResponse{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return AttendanceDayResponse{}, err
	}
	status := DayStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return AttendanceDayResponse{}, attendanceerrors.ErrInvalidStatus
	}
	minutes := 0
	if req.TotalMinutes != nil {
		minutes = *req.TotalMinutes
	}
	if minutes < 0 {
		return AttendanceDayResponse{}, attendanceerrors.ErrNegativeMinutes
	}
	if _, err := s.employee(ctx, companyID, req.EmployeeID); err != nil {
		return AttendanceDayResponse{}, err
	}

	now := s.now().UTC()
	if err := s.repo.UpsertDay(ctx, &AttendanceDay{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		EmployeeID:   employeeUUID,
		Date:         date,
		TotalMinutes: minutes,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		s.log(ctx).Error("hr upsert attendance day failed", zap.Error(err))
		return AttendanceDayResponse{}, err
	}

	day, err := s.repo.FindDay(ctx, companyID, req.EmployeeID, date)
	if err != nil {
		return AttendanceDayResponse{}, err
	}
	s.log(ctx).Info("hr attendance day upserted",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", string(status)),
		zap.String("reason", req.Reason),
	)
	return mapDayToResponse(*day), nil
}

func (s *service) HRUpdateDay(ctx context.Context, companyID, id string, req HRUpdateDayRequest) (AttendanceDayResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return AttendanceDayResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	status := DayStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return AttendanceDayResponse{}, attendanceerrors.ErrInvalidStatus
	}
	if req.TotalMinutes < 0 {
		return AttendanceDayResponse{}, attendanceerrors.ErrNegativeMinutes
	}

	day, err := s.repo.FindDayByID(ctx, companyID, id)
	if err != nil {
		return AttendanceDayResponse{}, err
	}
	if err := s.repo.UpdateDaySummary(ctx, day.ID, req.TotalMinutes, status); err != nil {
		s.log(ctx).Error("hr update attendance day failed", zap.Error(err))
		return AttendanceDayResponse{}, err
	}
	day.TotalMinutes, day.Status = req.TotalMinutes, status

	s.log(ctx).Info("hr attendance day updated",
		zap.String("attendance_day_id", id),
		zap.String("status", string(status)),
		zap.Int("total_minutes", req.TotalMinutes),
	)
	return mapDayToResponse(*day), nil
}

// HRAddEvent back-fills an event. Totals are not recomputed; HR corrects them
// through HRUpdateDay.
func (s *service) HRAddEvent(ctx context.Context, companyID string, req HRAddEventRequest) (AttendanceEventResponse, error) {
	companyUUID, employeeUUID, err := parseIDs(companyID, req.EmployeeID)
	if err != nil {
		return AttendanceEventResponse{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return AttendanceEventResponse{}, err
	}
	eventType := EventType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !eventType.Valid() {
		return AttendanceEventResponse{}, attendanceerrors.ErrInvalidEventType
	}
	source := Source(strings.ToUpper(strings.TrimSpace(req.Source)))
	if !source.Valid() {
		return AttendanceEventResponse{}, attendanceerrors.ErrInvalidSource
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Timestamp))
	if err != nil {
		return AttendanceEventResponse{}, attendanceerrors.ErrInvalidTimestamp
	}
	if !calendar.DateOf(ts).Equal(date) {
		return AttendanceEventResponse{}, attendanceerrors.ErrEventDateMismatch
	}
	if _, err := s.employee(ctx, companyID, req.EmployeeID); err != nil {
		return AttendanceEventResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceEventResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	day, err := qtx.EnsureDay(ctx, companyUUID, employeeUUID, date)
	if err != nil {
		return AttendanceEventResponse{}, err
	}
	reason := strings.TrimSpace(req.Reason)
	evt := &AttendanceEvent{
		ID:              uuid.New(),
		AttendanceDayID: day.ID,
		Type:            eventType,
		Source:          source,
		Timestamp:       ts.UTC(),
		IsManual:        true,
		Reason:          &reason,
		CreatedAt:       s.now().UTC(),
	}
	if err := qtx.AddEvent(ctx, evt); err != nil {
		s.log(ctx).Error("hr add attendance event failed", zap.Error(err))
		return AttendanceEventResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return AttendanceEventResponse{}, err
	}

	s.log(ctx).Info("hr attendance event added",
		zap.String("employee_id", req.EmployeeID),
		zap.String("type", string(eventType)),
		zap.Time("timestamp", evt.Timestamp),
	)
	return mapEventToResponse(*evt), nil
}

func mapOfficeToResponse(o OfficeLocation) OfficeLocationResponse {
	return OfficeLocationResponse{
		ID:        o.ID.String(),
		Latitude:  o.Latitude,
		Longitude: o.Longitude,
		RadiusM:   o.RadiusM,
		IsActive:  o.IsActive,
	}
}

func mapOverrideToResponse(o EmployeeAttendanceOverride) EmployeeOverrideResponse {
	resp := EmployeeOverrideResponse{
		ID:               o.ID.String(),
		EmployeeID:       o.EmployeeID.String(),
		AutoPresent:      o.AutoPresent,
		AttendanceExempt: o.AttendanceExempt,
		Reason:           o.Reason,
		ValidFrom:        calendar.FormatDate(o.ValidFrom),
	}
	if o.ValidTo != nil {
		v := calendar.FormatDate(*o.ValidTo)
		resp.ValidTo = &v
	}
	return resp
}
