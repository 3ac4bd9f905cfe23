package attendance

import (
	"context"
	"math"
	"time"

	attendanceerrors "github.com/anubhawdwd/hrms-be/internal/attendance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EarthRadiusM is the mean Earth radius used by HaversineMeters.
const EarthRadiusM = 6371000.0

type Point struct {
	Latitude  float64
	Longitude float64
}

// HaversineMeters is the great-circle distance between a and b.
func HaversineMeters(a, b Point) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)
	lat1, lat2 := toRad(a.Latitude), toRad(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

type OfficeProvider interface {
	ActiveOffice(ctx context.Context, companyID string) (*OfficeLocation, error)
}

type ViolationRecorder interface {
	CreateViolation(ctx context.Context, v *AttendanceViolation) error
}

// CompanySettings is satisfied by company.Service.
type CompanySettings interface {
	ViolationLoggingEnabled(ctx context.Context, companyID string) (bool, error)
}

type GeoFence struct {
	offices    OfficeProvider
	settings   CompanySettings
	violations ViolationRecorder
	logger     *zap.Logger
	now        func() time.Time
}

func NewGeoFence(offices OfficeProvider, settings CompanySettings, violations ViolationRecorder, logger ...*zap.Logger) *GeoFence {
	l := zap.L().Named("attendance.geofence")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.geofence")
	}
	return &GeoFence{
		offices:    offices,
		settings:   settings,
		violations: violations,
		logger:     l,
		now:        time.Now,
	}
}

// Validate fails with ErrOfficeNotConfigured or ErrOutsideOffice. A point
// exactly on the radius passes. Violations are only persisted for companies
// that opted in.
func (g *GeoFence) Validate(ctx context.Context, companyID, employeeID uuid.UUID, at Point, source Source) error {
	office, err := g.offices.ActiveOffice(ctx, companyID.String())
	if err != nil {
		return err
	}

	if office == nil {
		g.record(ctx, companyID, employeeID, at, 0, ReasonNoOfficeConfig, source)
		return attendanceerrors.ErrOfficeNotConfigured
	}

	distance := HaversineMeters(at, Point{Latitude: office.Latitude, Longitude: office.Longitude})
	if distance > float64(office.RadiusM) {
		g.logger.Warn("geofence rejected",
			zap.String("employee_id", employeeID.String()),
			zap.Float64("distance_m", distance),
			zap.Int("radius_m", office.RadiusM),
		)
		g.record(ctx, companyID, employeeID, at, distance, ReasonOutsideRadius, source)
		return attendanceerrors.ErrOutsideOffice
	}
	return nil
}

// record never masks the geofence failure it is called for.
func (g *GeoFence) record(ctx context.Context, companyID, employeeID uuid.UUID, at Point, distance float64, reason ViolationReason, source Source) {
	enabled, err := g.settings.ViolationLoggingEnabled(ctx, companyID.String())
	if err != nil {
		g.logger.Error("load violation logging setting failed", zap.String("company_id", companyID.String()), zap.Error(err))
		return
	}
	if !enabled {
		return
	}

	v := &AttendanceViolation{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Latitude:   at.Latitude,
		Longitude:  at.Longitude,
		DistanceM:  distance,
		Reason:     reason,
		Source:     source,
		CreatedAt:  g.now().UTC(),
	}
	if err := g.violations.CreateViolation(ctx, v); err != nil {
		g.logger.Error("record attendance violation failed",
			zap.String("employee_id", employeeID.String()),
			zap.String("reason", string(reason)),
			zap.Error(err),
		)
	}
}
