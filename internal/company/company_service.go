package company

import (
	"context"
	"errors"

	companyerrors "github.com/anubhawdwd/hrms-be/internal/company/errors"
	"github.com/anubhawdwd/hrms-be/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	UpdateAttendanceSettings(ctx context.Context, id string, req UpdateAttendanceSettingsRequest) (*CompanyResponse, error)
	ViolationLoggingEnabled(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	comp, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToResponse(comp), nil
}

func (s *service) UpdateAttendanceSettings(ctx context.Context, id string, req UpdateAttendanceSettingsRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	if req.LogGeoFenceViolations == nil {
		return nil, apperror.RequiredField("Log Geofence Violations")
	}

	affected, err := s.repo.UpdateAttendanceSettings(ctx, uid, *req.LogGeoFenceViolations)
	if err != nil {
		s.logger.Error("update attendance settings failed", zap.String("company_id", id), zap.Error(err))
		return nil, err
	}
	if affected == 0 {
		return nil, companyerrors.ErrCompanyNotFound
	}

	s.logger.Info("attendance settings updated",
		zap.String("company_id", id),
		zap.Bool("log_geofence_violations", *req.LogGeoFenceViolations),
	)
	return s.GetByID(ctx, id)
}

// ViolationLoggingEnabled tells the geofence whether failed checks are persisted.
func (s *service) ViolationLoggingEnabled(ctx context.Context, id string) (bool, error) {
	comp, err := s.find(ctx, id)
	if err != nil {
		return false, err
	}
	return comp.LogGeoFenceViolations, nil
}

func (s *service) find(ctx context.Context, id string) (*Company, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}
	return comp, nil
}

func mapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:                    c.ID.String(),
		Name:                  c.Name,
		Email:                 c.Email,
		IsActive:              c.IsActive,
		LogGeoFenceViolations: c.LogGeoFenceViolations,
	}
}
