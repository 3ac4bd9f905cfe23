package attendance

type CheckRequest struct {
	Source    string   `json:"source" binding:"required,oneof=WEB PWA"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type CheckResponse struct {
	Message      string  `json:"message"`
	Date         string  `json:"date"`
	Status       *string `json:"status,omitempty"`
	TotalMinutes *int    `json:"total_minutes,omitempty"`
}

type AttendanceEventResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Source    string  `json:"source"`
	Timestamp string  `json:"timestamp"`
	IsManual  bool    `json:"is_manual"`
	Reason    *string `json:"reason,omitempty"`
}

type AttendanceDayResponse struct {
	ID           string                    `json:"id"`
	EmployeeID   string                    `json:"employee_id"`
	Date         string                    `json:"date"`
	TotalMinutes int                       `json:"total_minutes"`
	Status       string                    `json:"status"`
	Events       []AttendanceEventResponse `json:"events"`
}

type ViolationQuery struct {
	EmployeeID string `form:"employee_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type ViolationResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceM  float64 `json:"distance_m"`
	Reason     string  `json:"reason"`
	Source     string  `json:"source"`
	CreatedAt  string  `json:"created_at"`
}

type SetOfficeLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	RadiusM   int      `json:"radius_m" binding:"required"`
}

type OfficeLocationResponse struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusM   int     `json:"radius_m"`
	IsActive  bool    `json:"is_active"`
}

type UpsertDesignationPolicyRequest struct {
	DesignationID    string `json:"designation_id" binding:"required,uuid"`
	AutoPresent      bool   `json:"auto_present"`
	AttendanceExempt bool   `json:"attendance_exempt"`
}

type DesignationPolicyResponse struct {
	ID               string `json:"id"`
	DesignationID    string `json:"designation_id"`
	AutoPresent      bool   `json:"auto_present"`
	AttendanceExempt bool   `json:"attendance_exempt"`
}

type UpsertEmployeeOverrideRequest struct {
	EmployeeID       string  `json:"employee_id" binding:"required,uuid"`
	AutoPresent      bool    `json:"auto_present"`
	AttendanceExempt bool    `json:"attendance_exempt"`
	Reason           *string `json:"reason"`
	ValidFrom        string  `json:"valid_from" binding:"required"`
	ValidTo          *string `json:"valid_to"`
}

type EmployeeOverrideResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	AutoPresent      bool    `json:"auto_present"`
	AttendanceExempt bool    `json:"attendance_exempt"`
	Reason           *string `json:"reason,omitempty"`
	ValidFrom        string  `json:"valid_from"`
	ValidTo          *string `json:"valid_to,omitempty"`
}

type HRUpsertDayRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required"`
	Status       string `json:"status" binding:"required"`
	TotalMinutes *int   `json:"total_minutes"`
	Reason       string `json:"reason" binding:"required"`
}

type HRUpdateDayRequest struct {
	Status       string `json:"status" binding:"required"`
	TotalMinutes int    `json:"total_minutes"`
}

type HRAddEventRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Timestamp  string `json:"timestamp" binding:"required"`
	Source     string `json:"source" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}
