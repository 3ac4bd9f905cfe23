package leave

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/anubhawdwd/hrms-be/internal/employee"
	employeeerrors "github.com/anubhawdwd/hrms-be/internal/employee/errors"
	"github.com/anubhawdwd/hrms-be/internal/events"
	leaveerrors "github.com/anubhawdwd/hrms-be/internal/leave/errors"
	"github.com/anubhawdwd/hrms-be/internal/messaging/kafka"
	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"
	"github.com/anubhawdwd/hrms-be/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeReader is the slice of the employee module leave needs.
type EmployeeReader interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

type Service interface {
	Apply(ctx context.Context, companyID, employeeID string, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, companyID, employeeID, id string) (LeaveRequestResponse, error)
	Approve(ctx context.Context, companyID, approverID, id string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, companyID, approverID, id string, reason *string) (LeaveRequestResponse, error)
	HRCancel(ctx context.Context, companyID, actorID, id, reason string) (LeaveRequestResponse, error)

	ListRequests(ctx context.Context, companyID, employeeID string) ([]LeaveRequestResponse, error)
	ListPending(ctx context.Context, companyID string) ([]LeaveRequestResponse, error)
	ListOnDate(ctx context.Context, companyID, date string) ([]LeaveRequestResponse, error)
	GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error)

	RequestEncashment(ctx context.Context, companyID, employeeID string, req EncashmentRequest) (EncashmentResponse, error)
	ApproveEncashment(ctx context.Context, companyID, approverID, id string) (EncashmentResponse, error)
	RejectEncashment(ctx context.Context, companyID, approverID, id string) (EncashmentResponse, error)

	CreateLeaveType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateLeaveType(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error)
	UpsertPolicy(ctx context.Context, companyID string, req UpsertPolicyRequest) (PolicyResponse, error)
	ListPolicies(ctx context.Context, companyID string, year int) ([]PolicyResponse, error)
	UpsertOverride(ctx context.Context, companyID string, req UpsertOverrideRequest) (OverrideResponse, error)
	CreateHoliday(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context, companyID string) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, companyID, id string) error
	AllocateBalance(ctx context.Context, companyID string, req AllocateBalanceRequest) (BalanceResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	ledger    Ledger
	employees EmployeeReader
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	ledger Ledger,
	employees EmployeeReader,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		ledger:    ledger,
		employees: employees,
		outbox:    outbox,
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

func (s *service) Apply(ctx context.Context, companyID, employeeID string, req ApplyLeaveRequest) (LeaveRequestResponse, error) {
	log := s.log(ctx)
	log.Debug("apply leave requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("from_date", req.FromDate),
		zap.String("to_date", req.ToDate),
		zap.String("duration_type", req.DurationType),
	)

	companyUUID, employeeUUID, leaveTypeUUID, err := validateApplyIDs(companyID, employeeID, req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	from, err := parseDate(req.FromDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	to, err := parseDate(req.ToDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	duration, err := ResolveDuration(DurationInput{
		Type:      DurationType(req.DurationType),
		FromDate:  from,
		ToDate:    to,
		Slot:      req.Slot,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		log.Warn("apply leave duration rejected", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	year := from.Year()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("apply leave begin tx failed", zap.Error(tx.Error))
		return LeaveRequestResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	leaveType, err := qtx.FindLeaveType(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !leaveType.IsActive {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveTypeInactive
	}

	if err := qtx.LockEmployeeRequests(ctx, employeeID); err != nil {
		log.Error("apply leave lock failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	existing, err := qtx.FindActiveRequestsInRange(ctx, companyID, employeeID, from, to)
	if err != nil {
		log.Error("apply leave overlap lookup failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if hit, found := FindConflict(windowFromDuration(from, to, duration), existing); found {
		log.Warn("apply leave overlap detected",
			zap.String("employee_id", employeeID),
			zap.String("conflicting_leave_id", hit.ID.String()),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveOverlap
	}

	effective, err := NewPolicyResolver(qtx).Effective(ctx, companyID, employeeID, req.LeaveTypeID, year)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if err := checkEligibility(effective.Policy, *emp, from); err != nil {
		log.Warn("apply leave eligibility rejected", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	sandwich := 0
	if duration.Type == DurationFullDay && calendar.InclusiveDays(from, to) > 1 && effective.SandwichEnabled {
		holidays, err := qtx.ListHolidayDates(ctx, companyID, from, to)
		if err != nil {
			log.Error("apply leave holiday lookup failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
		sandwich = SandwichDays(from, to, holidays)
	}
	cost := ToDays(duration.Type, duration.Value).Add(decimal.NewFromInt(int64(sandwich)))

	balance, err := s.ledger.WithTx(tx).Get(ctx, employeeID, req.LeaveTypeID, year)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if balance.Remaining.LessThan(cost) {
		log.Warn("apply leave insufficient balance",
			zap.String("remaining", balance.Remaining.String()),
			zap.String("day_cost", cost.String()),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrInsufficientBalance
	}

	now := s.now().UTC()
	lr := &LeaveRequest{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		LeaveTypeID:   leaveTypeUUID,
		FromDate:      from,
		ToDate:        to,
		DurationType:  duration.Type,
		DurationValue: duration.Value,
		SandwichDays:  sandwich,
		DayCost:       cost,
		Status:        StatusPending,
		Reason:        req.Reason,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if duration.Start != nil && duration.End != nil {
		start, end := duration.Start.String(), duration.End.String()
		lr.StartTime, lr.EndTime = &start, &end
	}

	if err := qtx.CreateRequest(ctx, lr); err != nil {
		log.Error("apply leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("apply leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	log.Info("apply leave success",
		zap.String("leave_id", lr.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("day_cost", cost.String()),
	)

	return mapRequestToResponse(*lr), nil
}

func checkEligibility(policy LeavePolicy, emp employee.Employee, from time.Time) error {
	if policy.GenderRestriction != nil {
		if emp.Gender == nil || *emp.Gender != *policy.GenderRestriction {
			return leaveerrors.ErrGenderNotEligible
		}
	}
	if !policy.ProbationAllowed && emp.OnProbationAt(from) {
		return leaveerrors.ErrProbationNotEligible
	}
	return nil
}

func (s *service) Cancel(ctx context.Context, companyID, employeeID, id string) (LeaveRequestResponse, error) {
	log := s.log(ctx)
	log.Debug("cancel leave requested",
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("cancel leave begin tx failed", zap.Error(tx.Error))
		return LeaveRequestResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindRequestForUpdate(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if lr.EmployeeID.String() != employeeID {
		return LeaveRequestResponse{}, leaveerrors.ErrNotRequestOwner
	}

	from := lr.Status
	next, err := NextStatus(from, ActionCancel)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	lr.Status = next
	lr.UpdatedAt = s.now().UTC()

	if err := qtx.TransitionRequest(ctx, lr, from); err != nil {
		log.Warn("cancel leave transition failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("cancel leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	log.Info("cancel leave success", zap.String("leave_id", id))

	return mapRequestToResponse(*lr), nil
}

func (s *service) Approve(ctx context.Context, companyID, approverID, id string) (LeaveRequestResponse, error) {
	log := s.log(ctx)
	log.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("approver_id", approverID),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(approverID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("approve leave begin tx failed", zap.Error(tx.Error))
		return LeaveRequestResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ltx := s.ledger.WithTx(tx)

	approver, err := s.resolveApprover(ctx, companyID, approverID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	lr, err := qtx.FindRequestForUpdate(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	from := lr.Status
	next, err := NextStatus(from, ActionApprove)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	employeeID, leaveTypeID, year := lr.EmployeeID.String(), lr.LeaveTypeID.String(), lr.Year()
	balance, err := ltx.Get(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if balance.Remaining.LessThan(lr.DayCost) {
		log.Warn("approve leave insufficient balance",
			zap.String("leave_id", id),
			zap.String("remaining", balance.Remaining.String()),
			zap.String("day_cost", lr.DayCost.String()),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrInsufficientBalance
	}
	if err := ltx.Debit(ctx, employeeID, leaveTypeID, year, lr.DayCost); err != nil {
		log.Warn("approve leave debit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	now := s.now().UTC()
	lr.Status = next
	lr.ApprovedByID = &approver.ID
	lr.ApprovedAt = &now
	lr.UpdatedAt = now
	if err := qtx.TransitionRequest(ctx, lr, from); err != nil {
		log.Warn("approve leave transition failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueRequestEvent(ctx, tx, events.EventLeaveApproved, *lr); err != nil {
		log.Error("approve leave outbox failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("approve leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	log.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
		zap.String("day_cost", lr.DayCost.String()),
	)

	return mapRequestToResponse(*lr), nil
}

func (s *service) Reject(ctx context.Context, companyID, approverID, id string, reason *string) (LeaveRequestResponse, error) {
	log := s.log(ctx)
	log.Debug("reject leave requested",
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(approverID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("reject leave begin tx failed", zap.Error(tx.Error))
		return LeaveRequestResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	approver, err := s.resolveApprover(ctx, companyID, approverID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	lr, err := qtx.FindRequestForUpdate(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	from := lr.Status
	next, err := NextStatus(from, ActionReject)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	now := s.now().UTC()
	lr.Status = next
	lr.ApprovedByID = &approver.ID
	lr.ApprovedAt = &now
	lr.DecisionReason = trimmedOrNil(reason)
	lr.UpdatedAt = now
	if err := qtx.TransitionRequest(ctx, lr, from); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("reject leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	log.Info("reject leave success", zap.String("leave_id", id))

	return mapRequestToResponse(*lr), nil
}

// HRCancel reverses an approved leave and credits back exactly the stored
// day cost that approval debited.
func (s *service) HRCancel(ctx context.Context, companyID, actorID, id, reason string) (LeaveRequestResponse, error) {
	log := s.log(ctx)
	log.Debug("hr cancel leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}
	decisionReason := trimmedOrNil(&reason)
	if decisionReason == nil {
		return LeaveRequestResponse{}, leaveerrors.ErrReasonRequired
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("hr cancel leave begin tx failed", zap.Error(tx.Error))
		return LeaveRequestResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindRequestForUpdate(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	from := lr.Status
	next, err := NextStatus(from, ActionHRCancel)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	if lr.DayCost.IsPositive() {
		if err := s.ledger.WithTx(tx).Credit(ctx, lr.EmployeeID.String(), lr.LeaveTypeID.String(), lr.Year(), lr.DayCost); err != nil {
			log.Error("hr cancel leave credit failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveRequestResponse{}, err
		}
	}

	lr.Status = next
	lr.DecisionReason = decisionReason
	lr.UpdatedAt = s.now().UTC()
	if err := qtx.TransitionRequest(ctx, lr, from); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueRequestEvent(ctx, tx, events.EventLeaveCancelled, *lr); err != nil {
		log.Error("hr cancel leave outbox failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("hr cancel leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	log.Info("hr cancel leave success",
		zap.String("leave_id", id),
		zap.String("credited", lr.DayCost.String()),
	)

	return mapRequestToResponse(*lr), nil
}

func (s *service) ListRequests(ctx context.Context, companyID, employeeID string) ([]LeaveRequestResponse, error) {
	reqs, err := s.repo.ListRequestsByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapRequestsToResponse(reqs), nil
}

func (s *service) ListPending(ctx context.Context, companyID string) ([]LeaveRequestResponse, error) {
	reqs, err := s.repo.ListRequestsByStatus(ctx, companyID, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapRequestsToResponse(reqs), nil
}

// ListOnDate returns approved leave covering date, or today when date is empty.
func (s *service) ListOnDate(ctx context.Context, companyID, date string) ([]LeaveRequestResponse, error) {
	day := calendar.DateOf(s.now())
	if date != "" {
		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		day = d
	}
	reqs, err := s.repo.ListApprovedOn(ctx, companyID, day)
	if err != nil {
		return nil, err
	}
	return mapRequestsToResponse(reqs), nil
}

// GetBalances defaults year to the current year when zero.
func (s *service) GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error) {
	if year == 0 {
		year = s.now().UTC().Year()
	}
	if _, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID); err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return nil, leaveerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	balances, err := s.ledger.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapBalanceToResponse(b)
	}
	return resp, nil
}

func (s *service) resolveApprover(ctx context.Context, companyID, approverID string) (*employee.Employee, error) {
	approver, err := s.employees.FindByIDAndCompany(ctx, companyID, approverID)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return nil, leaveerrors.ErrApproverNotFound
		}
		return nil, err
	}
	return approver, nil
}

func (s *service) enqueueRequestEvent(ctx context.Context, tx *gorm.DB, eventType string, lr LeaveRequest) error {
	evt := events.LeaveLifecycleEvent{
		EventType:      eventType,
		RequestID:      contextutil.GetRequestID(ctx),
		LeaveRequestID: lr.ID.String(),
		CompanyID:      lr.CompanyID.String(),
		EmployeeID:     lr.EmployeeID.String(),
		LeaveTypeID:    lr.LeaveTypeID.String(),
		Year:           lr.Year(),
		DurationType:   string(lr.DurationType),
		FromDate:       calendar.FormatDate(lr.FromDate),
		ToDate:         calendar.FormatDate(lr.ToDate),
		DayCost:        lr.DayCost.String(),
		OccurredAt:     s.now().UTC(),
	}
	return s.enqueue(ctx, tx, events.AggregateLeaveRequest, lr.ID.String(), evt)
}

func (s *service) enqueue(ctx context.Context, tx *gorm.DB, aggregateType, aggregateID string, evt events.LeaveLifecycleEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     evt.RequestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     evt.EventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func validateApplyIDs(companyID, employeeID, leaveTypeID string) (uuid.UUID, uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, leaveerrors.ErrInvalidEmployeeID
	}
	leaveTypeUUID, err := uuid.Parse(leaveTypeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, leaveerrors.ErrInvalidLeaveTypeID
	}
	return companyUUID, employeeUUID, leaveTypeUUID, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := calendar.ParseDate(v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapRequestToResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             r.ID.String(),
		CompanyID:      r.CompanyID.String(),
		EmployeeID:     r.EmployeeID.String(),
		LeaveTypeID:    r.LeaveTypeID.String(),
		FromDate:       calendar.FormatDate(r.FromDate),
		ToDate:         calendar.FormatDate(r.ToDate),
		DurationType:   string(r.DurationType),
		DurationValue:  r.DurationValue.String(),
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		SandwichDays:   r.SandwichDays,
		DayCost:        r.DayCost.String(),
		Status:         string(r.Status),
		Reason:         r.Reason,
		DecisionReason: r.DecisionReason,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.ApprovedByID != nil {
		v := r.ApprovedByID.String()
		resp.ApprovedBy = &v
	}
	if r.ApprovedAt != nil {
		v := r.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapRequestsToResponse(reqs []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = mapRequestToResponse(r)
	}
	return resp
}

func mapBalanceToResponse(b LeaveBalance) BalanceResponse {
	resp := BalanceResponse{
		LeaveTypeID:    b.LeaveTypeID.String(),
		Year:           b.Year,
		Allocated:      b.Allocated.String(),
		CarriedForward: b.CarriedForward.String(),
		Used:           b.Used.String(),
		Remaining:      b.Remaining.String(),
	}
	if b.LeaveType != nil {
		resp.LeaveTypeCode = b.LeaveType.Code
		resp.LeaveTypeName = b.LeaveType.Name
	}
	return resp
}
