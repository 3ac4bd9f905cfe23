package leave

import (
	"context"
	"time"

	leaveerrors "github.com/anubhawdwd/hrms-be/internal/leave/errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger owns the per-employee, per-leave-type, per-year balance counters.
// Debit and Credit never clamp: they fail instead of overdrawing.
type Ledger interface {
	WithTx(tx *gorm.DB) Ledger
	Get(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	Debit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
	Credit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
	Upsert(ctx context.Context, b *LeaveBalance) error
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
}

type ledger struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLedger(db *gorm.DB) Ledger {
	return &ledger{db: db, now: time.Now}
}

func (l *ledger) WithTx(tx *gorm.DB) Ledger {
	return &ledger{db: tx, now: l.now}
}

func (l *ledger) Get(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := l.db.WithContext(ctx).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		First(&b).Error
	if err != nil {
		return nil, mapNotFound(err, leaveerrors.ErrBalanceNotFound)
	}
	return &b, nil
}

// GetForUpdate reads the balance and holds its row lock until the
// transaction ends, so used cannot change underneath the caller.
func (l *ledger) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := l.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		First(&b).Error
	if err != nil {
		return nil, mapNotFound(err, leaveerrors.ErrBalanceNotFound)
	}
	return &b, nil
}

// Debit moves days from remaining to used. The remaining >= days guard is part
// of the UPDATE so a concurrent debit can never push the balance negative.
func (l *ledger) Debit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	if !days.IsPositive() {
		return leaveerrors.ErrInvalidDays
	}

	res := l.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		Where("remaining >= ?", days).
		Updates(map[string]any{
			"used":       gorm.Expr("used + ?", days),
			"remaining":  gorm.Expr("remaining - ?", days),
			"updated_at": l.now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return l.explainMiss(ctx, employeeID, leaveTypeID, year, leaveerrors.ErrInsufficientBalance)
	}
	return nil
}

// Credit returns days from used to remaining.
func (l *ledger) Credit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	if !days.IsPositive() {
		return leaveerrors.ErrInvalidDays
	}

	res := l.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		Where("used >= ?", days).
		Updates(map[string]any{
			"used":       gorm.Expr("used - ?", days),
			"remaining":  gorm.Expr("remaining + ?", days),
			"updated_at": l.now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return l.explainMiss(ctx, employeeID, leaveTypeID, year, leaveerrors.ErrCreditExceedsUsed)
	}
	return nil
}

// explainMiss tells a missing balance row apart from a failed guard.
func (l *ledger) explainMiss(ctx context.Context, employeeID, leaveTypeID string, year int, guardErr error) error {
	if _, err := l.Get(ctx, employeeID, leaveTypeID, year); err != nil {
		return err
	}
	return guardErr
}

func (l *ledger) Upsert(ctx context.Context, b *LeaveBalance) error {
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "leave_type_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"allocated", "carried_forward", "remaining", "updated_at"}),
		}).
		Create(b).Error
}

func (l *ledger) ListByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := l.db.WithContext(ctx).
		Preload("LeaveType").
		Where("employee_id = ? AND year = ?", employeeID, year).
		Order("created_at ASC").
		Find(&balances).Error
	return balances, err
}
