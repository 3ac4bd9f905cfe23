package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	UpdateAttendanceSettings(ctx context.Context, id uuid.UUID, logViolations bool) (int64, error)
	WithTx(tx *gorm.DB) Repository
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

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) UpdateAttendanceSettings(ctx context.Context, id uuid.UUID, logViolations bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Company{}).
		Where("id = ?", id).
		Update("log_geofence_violations", logViolations)
	return res.RowsAffected, res.Error
}
