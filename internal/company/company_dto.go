package company

type UpdateAttendanceSettingsRequest struct {
	LogGeoFenceViolations *bool `json:"log_geofence_violations" binding:"required"`
}

type CompanyResponse struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	IsActive              bool   `json:"is_active"`
	LogGeoFenceViolations bool   `json:"log_geofence_violations"`
}
