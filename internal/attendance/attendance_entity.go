package attendance

import (
	"time"

	"github.com/google/uuid"
)

type DayStatus string

const (
	StatusPresent DayStatus = "PRESENT"
	StatusAbsent  DayStatus = "ABSENT"
	StatusPartial DayStatus = "PARTIAL"
	StatusLeave   DayStatus = "LEAVE"
)

func (s DayStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusPartial, StatusLeave:
		return true
	}
	return false
}

type EventType string

const (
	EventCheckIn  EventType = "CHECK_IN"
	EventCheckOut EventType = "CHECK_OUT"
)

func (t EventType) Valid() bool {
	return t == EventCheckIn || t == EventCheckOut
}

type Source string

const (
	SourceWeb Source = "WEB"
	SourcePWA Source = "PWA"
)

func (s Source) Valid() bool {
	return s == SourceWeb || s == SourcePWA
}

type ViolationReason string

const (
	ReasonOutsideRadius  ViolationReason = "OUTSIDE_RADIUS"
	ReasonNoOfficeConfig ViolationReason = "NO_OFFICE_CONFIG"
)

// OfficeLocation is the geofence center. At most one row per company is active.
type OfficeLocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_office_locations_company_active" json:"company_id"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	RadiusM   int       `gorm:"column:radius_m;not null" json:"radius_m"`
	IsActive  bool      `gorm:"not null;default:true;index:idx_office_locations_company_active" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OfficeLocation) TableName() string {
	return "office_locations"
}

type DesignationAttendancePolicy struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;index"`
	DesignationID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AutoPresent      bool      `gorm:"not null;default:false"`
	AttendanceExempt bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (DesignationAttendancePolicy) TableName() string {
	return "designation_attendance_policies"
}

type EmployeeAttendanceOverride struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_override_employee_from"`
	AutoPresent      bool       `gorm:"not null;default:false"`
	AttendanceExempt bool       `gorm:"not null;default:false"`
	Reason           *string    `gorm:"type:text"`
	ValidFrom        time.Time  `gorm:"type:date;not null;uniqueIndex:uq_attendance_override_employee_from"`
	ValidTo          *time.Time `gorm:"type:date"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (EmployeeAttendanceOverride) TableName() string {
	return "employee_attendance_overrides"
}

type AttendanceDay struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_day_employee_date"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_day_employee_date"`
	TotalMinutes int       `gorm:"not null;default:0"`
	Status       DayStatus `gorm:"type:varchar(20);not null;default:'ABSENT'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Events []AttendanceEvent `gorm:"foreignKey:AttendanceDayID"`
}

func (AttendanceDay) TableName() string {
	return "attendance_days"
}

// LastEvent returns the latest event by timestamp, or nil for an empty day.
func (d AttendanceDay) LastEvent() *AttendanceEvent {
	var last *AttendanceEvent
	for i := range d.Events {
		if last == nil || !d.Events[i].Timestamp.Before(last.Timestamp) {
			last = &d.Events[i]
		}
	}
	return last
}

// AttendanceEvent rows are append-only.
type AttendanceEvent struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AttendanceDayID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type            EventType `gorm:"type:varchar(20);not null"`
	Source          Source    `gorm:"type:varchar(10);not null"`
	Timestamp       time.Time `gorm:"not null;index"`
	IsManual        bool      `gorm:"not null;default:false"`
	Reason          *string   `gorm:"type:text"`
	CreatedAt       time.Time
}

func (AttendanceEvent) TableName() string {
	return "attendance_events"
}

type AttendanceViolation struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Latitude   float64         `gorm:"not null"`
	Longitude  float64         `gorm:"not null"`
	DistanceM  float64         `gorm:"column:distance_m;not null"`
	Reason     ViolationReason `gorm:"type:varchar(30);not null"`
	Source     Source          `gorm:"type:varchar(10);not null"`
	CreatedAt  time.Time       `gorm:"index"`
}

func (AttendanceViolation) TableName() string {
	return "attendance_violations"
}
