package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/anubhawdwd/hrms-be/internal/events"
	"github.com/anubhawdwd/hrms-be/internal/leave"
	"github.com/anubhawdwd/hrms-be/internal/shared/calendar"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApplyLeaveEvent keeps attendance days in line with full-day leave. Days
// after today are left for check-in to resolve. Replays are harmless.
func (s *service) ApplyLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) error {
	log := s.log(ctx).With(
		zap.String("event_type", event.EventType),
		zap.String("leave_request_id", event.LeaveRequestID),
	)

	switch event.EventType {
	case events.EventLeaveApproved, events.EventLeaveCancelled:
	default:
		log.Debug("leave event ignored by attendance")
		return nil
	}
	if leave.DurationType(event.DurationType) != leave.DurationFullDay {
		log.Debug("partial leave event ignored by attendance")
		return nil
	}

	companyUUID, employeeUUID, err := parseIDs(event.CompanyID, event.EmployeeID)
	if err != nil {
		return fmt.Errorf("leave event %s: %w", event.LeaveRequestID, err)
	}
	from, err := calendar.ParseDate(event.FromDate)
	if err != nil {
		return fmt.Errorf("leave event %s from_date: %w", event.LeaveRequestID, err)
	}
	to, err := calendar.ParseDate(event.ToDate)
	if err != nil {
		return fmt.Errorf("leave event %s to_date: %w", event.LeaveRequestID, err)
	}
	if today := calendar.DateOf(s.now()); to.After(today) {
		to = today
	}
	if to.Before(from) {
		log.Debug("leave starts in the future, nothing to sync")
		return nil
	}

	if event.EventType == events.EventLeaveCancelled {
		return s.restoreLeaveDays(ctx, event.CompanyID, event.EmployeeID, from, to, log)
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	var syncErr error
	calendar.Each(from, to, func(day time.Time) {
		if syncErr != nil {
			return
		}
		syncErr = qtx.UpsertDay(ctx, &AttendanceDay{
			ID:         uuid.New(),
			CompanyID:  companyUUID,
			EmployeeID: employeeUUID,
			Date:       day,
			Status:     StatusLeave,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	})
	if syncErr != nil {
		log.Error("mark leave days failed", zap.Error(syncErr))
		return syncErr
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}
	log.Info("leave days marked", zap.Int("days", calendar.InclusiveDays(from, to)))
	return nil
}

// restoreLeaveDays rebuilds LEAVE days in [from, to] once their leave is
// gone. Days with events get their minutes back from the check-in/out
// pairs; days without any become ABSENT.
func (s *service) restoreLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time, log *zap.Logger) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	days, err := qtx.ListDays(ctx, companyID, employeeID, from, to)
	if err != nil {
		log.Error("load leave days failed", zap.Error(err))
		return err
	}

	restored := 0
	for _, day := range days {
		if day.Status != StatusLeave {
			continue
		}
		total, status := 0, StatusAbsent
		if len(day.Events) > 0 {
			covering, err := s.coveringLeave(ctx, employeeID, day.Date)
			if err != nil {
				return err
			}
			if covering.fullDay {
				continue
			}
			total = WorkedMinutes(day.Events)
			status = DayStatusFor(total, EffectiveTarget(covering.partialMinutes))
			if last := day.LastEvent(); last != nil && last.Type == EventCheckIn {
				status = StatusPresent
			}
		}
		if err := qtx.UpdateDaySummary(ctx, day.ID, total, status); err != nil {
			log.Error("restore leave day failed", zap.Time("date", day.Date), zap.Error(err))
			return err
		}
		restored++
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}
	log.Info("leave days restored", zap.Int("days", restored))
	return nil
}
