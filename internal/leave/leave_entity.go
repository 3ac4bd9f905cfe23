package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LeaveType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_type_company_code"`
	Code      string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_type_company_code"`
	Name      string    `gorm:"type:varchar(100);not null"`
	IsPaid    bool      `gorm:"not null;default:true"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveType) TableName() string {
	return "leave_types"
}

type LeavePolicy struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	LeaveTypeID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_leave_policy_type_year"`
	Year              int              `gorm:"not null;uniqueIndex:uq_leave_policy_type_year"`
	YearlyAllocation  decimal.Decimal  `gorm:"type:numeric(10,4);not null;default:0"`
	AllowCarryForward bool             `gorm:"not null;default:false"`
	MaxCarryForward   *decimal.Decimal `gorm:"type:numeric(10,4)"`
	AllowEncashment   bool             `gorm:"not null;default:false"`
	ProbationAllowed  bool             `gorm:"not null;default:true"`
	GenderRestriction *string          `gorm:"type:varchar(10)"`
	MonthlyAccrual    bool             `gorm:"not null;default:false"`
	SandwichRule      bool             `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}

// EmployeeLeaveOverride fields are nil when the employee inherits the policy value.
type EmployeeLeaveOverride struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	EmployeeID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_leave_override"`
	LeaveTypeID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_leave_override"`
	Year            int              `gorm:"not null;uniqueIndex:uq_leave_override"`
	AllowSandwich   *bool
	AllowEncashment *bool
	ExtraAllocation *decimal.Decimal `gorm:"type:numeric(10,4)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (EmployeeLeaveOverride) TableName() string {
	return "employee_leave_overrides"
}

type LeaveBalance struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance"`
	LeaveTypeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance"`
	Year           int             `gorm:"not null;uniqueIndex:uq_leave_balance"`
	Allocated      decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0"`
	Used           decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0"`
	CarriedForward decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0"`
	Remaining      decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LeaveType      *LeaveType `gorm:"foreignKey:LeaveTypeID;references:ID"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// Consistent checks remaining == allocated + carriedForward - used.
func (b LeaveBalance) Consistent() bool {
	return b.Remaining.Equal(b.Allocated.Add(b.CarriedForward).Sub(b.Used))
}

type LeaveRequest struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_leave_requests_company_status"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveTypeID    uuid.UUID       `gorm:"type:uuid;not null"`
	FromDate       time.Time       `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	ToDate         time.Time       `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	DurationType   DurationType    `gorm:"type:varchar(20);not null"`
	DurationValue  decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	StartTime      *string         `gorm:"type:varchar(5)"`
	EndTime        *string         `gorm:"type:varchar(5)"`
	SandwichDays   int             `gorm:"not null;default:0"`
	DayCost        decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	Status         RequestStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_company_status"`
	ApprovedByID   *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt     *time.Time
	Reason         *string `gorm:"type:text"`
	DecisionReason *string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Year is the ledger year a request is charged against.
func (r LeaveRequest) Year() int {
	return r.FromDate.Year()
}

type LeaveEncashment struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	EmployeeID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	LeaveTypeID  uuid.UUID        `gorm:"type:uuid;not null"`
	Year         int              `gorm:"not null"`
	Days         decimal.Decimal  `gorm:"type:numeric(10,4);not null"`
	Status       EncashmentStatus `gorm:"type:varchar(20);not null;default:'REQUESTED'"`
	ApprovedByID *uuid.UUID       `gorm:"type:uuid"`
	ApprovedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (LeaveEncashment) TableName() string {
	return "leave_encashments"
}

type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_holiday_company_date"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uq_holiday_company_date"`
	CreatedAt time.Time
}

func (Holiday) TableName() string {
	return "holidays"
}
