package leave

import (
	"context"
	"errors"
	"time"

	employeeerrors "github.com/anubhawdwd/hrms-be/internal/employee/errors"
	"github.com/anubhawdwd/hrms-be/internal/events"
	leaveerrors "github.com/anubhawdwd/hrms-be/internal/leave/errors"
	"github.com/anubhawdwd/hrms-be/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *service) RequestEncashment(ctx context.Context, companyID, employeeID string, req EncashmentRequest) (EncashmentResponse, error) {
	log := s.log(ctx)
	log.Debug("request encashment",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
		zap.String("days", req.Days.String()),
	)

	companyUUID, employeeUUID, leaveTypeUUID, err := validateApplyIDs(companyID, employeeID, req.LeaveTypeID)
	if err != nil {
		return EncashmentResponse{}, err
	}
	if !req.Days.IsPositive() {
		return EncashmentResponse{}, leaveerrors.ErrInvalidDays
	}
	if req.Year < minPolicyYear {
		return EncashmentResponse{}, leaveerrors.ErrInvalidYear
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("request encashment begin tx failed", zap.Error(tx.Error))
		return EncashmentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID); err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return EncashmentResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return EncashmentResponse{}, err
	}
	if _, err := qtx.FindLeaveType(ctx, companyID, req.LeaveTypeID); err != nil {
		return EncashmentResponse{}, err
	}

	effective, err := NewPolicyResolver(qtx).Effective(ctx, companyID, employeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return EncashmentResponse{}, err
	}
	if !effective.AllowEncashment {
		return EncashmentResponse{}, leaveerrors.ErrEncashmentNotAllowed
	}

	balance, err := s.ledger.WithTx(tx).Get(ctx, employeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return EncashmentResponse{}, err
	}
	if balance.Remaining.LessThan(req.Days) {
		log.Warn("request encashment insufficient balance",
			zap.String("remaining", balance.Remaining.String()),
			zap.String("days", req.Days.String()),
		)
		return EncashmentResponse{}, leaveerrors.ErrInsufficientBalance
	}

	now := s.now().UTC()
	enc := &LeaveEncashment{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		LeaveTypeID: leaveTypeUUID,
		Year:        req.Year,
		Days:        req.Days,
		Status:      EncashmentRequested,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := qtx.CreateEncashment(ctx, enc); err != nil {
		log.Error("request encashment persist failed", zap.Error(err))
		return EncashmentResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("request encashment commit failed", zap.Error(err))
		return EncashmentResponse{}, err
	}
	log.Info("request encashment success", zap.String("encashment_id", enc.ID.String()))

	return mapEncashmentToResponse(*enc), nil
}

func (s *service) ApproveEncashment(ctx context.Context, companyID, approverID, id string) (EncashmentResponse, error) {
	return s.decideEncashment(ctx, companyID, approverID, id, ActionApprove)
}

func (s *service) RejectEncashment(ctx context.Context, companyID, approverID, id string) (EncashmentResponse, error) {
	return s.decideEncashment(ctx, companyID, approverID, id, ActionReject)
}

// decideEncashment debits the ledger only on approval; the status change and
// the debit commit together.
func (s *service) decideEncashment(ctx context.Context, companyID, approverID, id string, action RequestAction) (EncashmentResponse, error) {
	log := s.log(ctx)
	log.Debug("decide encashment requested",
		zap.String("encashment_id", id),
		zap.String("approver_id", approverID),
		zap.String("action", string(action)),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return EncashmentResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(approverID); err != nil {
		return EncashmentResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("decide encashment begin tx failed", zap.Error(tx.Error))
		return EncashmentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	approver, err := s.resolveApprover(ctx, companyID, approverID)
	if err != nil {
		return EncashmentResponse{}, err
	}

	enc, err := qtx.FindEncashmentForUpdate(ctx, companyID, id)
	if err != nil {
		return EncashmentResponse{}, err
	}
	from := enc.Status
	next, err := NextEncashmentStatus(from, action)
	if err != nil {
		return EncashmentResponse{}, err
	}

	if action == ActionApprove {
		ltx := s.ledger.WithTx(tx)
		employeeID, leaveTypeID := enc.EmployeeID.String(), enc.LeaveTypeID.String()
		balance, err := ltx.Get(ctx, employeeID, leaveTypeID, enc.Year)
		if err != nil {
			return EncashmentResponse{}, err
		}
		if balance.Remaining.LessThan(enc.Days) {
			return EncashmentResponse{}, leaveerrors.ErrInsufficientBalance
		}
		if err := ltx.Debit(ctx, employeeID, leaveTypeID, enc.Year, enc.Days); err != nil {
			log.Warn("approve encashment debit failed", zap.String("encashment_id", id), zap.Error(err))
			return EncashmentResponse{}, err
		}
	}

	now := s.now().UTC()
	enc.Status = next
	enc.ApprovedByID = &approver.ID
	enc.ApprovedAt = &now
	enc.UpdatedAt = now
	if err := qtx.TransitionEncashment(ctx, enc, from); err != nil {
		return EncashmentResponse{}, err
	}

	if action == ActionApprove {
		evt := events.LeaveLifecycleEvent{
			EventType:    events.EventEncashmentApproved,
			RequestID:    contextutil.GetRequestID(ctx),
			EncashmentID: enc.ID.String(),
			CompanyID:    enc.CompanyID.String(),
			EmployeeID:   enc.EmployeeID.String(),
			LeaveTypeID:  enc.LeaveTypeID.String(),
			Year:         enc.Year,
			DayCost:      enc.Days.String(),
			OccurredAt:   now,
		}
		if err := s.enqueue(ctx, tx, events.AggregateLeaveEncashment, enc.ID.String(), evt); err != nil {
			log.Error("approve encashment outbox failed", zap.Error(err))
			return EncashmentResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("decide encashment commit failed", zap.Error(err))
		return EncashmentResponse{}, err
	}
	log.Info("decide encashment success",
		zap.String("encashment_id", id),
		zap.String("status", string(enc.Status)),
	)

	return mapEncashmentToResponse(*enc), nil
}

func mapEncashmentToResponse(e LeaveEncashment) EncashmentResponse {
	resp := EncashmentResponse{
		ID:          e.ID.String(),
		EmployeeID:  e.EmployeeID.String(),
		LeaveTypeID: e.LeaveTypeID.String(),
		Year:        e.Year,
		Days:        e.Days.String(),
		Status:      string(e.Status),
	}
	if e.ApprovedByID != nil {
		v := e.ApprovedByID.String()
		resp.ApprovedBy = &v
	}
	if e.ApprovedAt != nil {
		v := e.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}
