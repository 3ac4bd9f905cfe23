package leave

import "github.com/shopspring/decimal"

type ApplyLeaveRequest struct {
	LeaveTypeID  string  `json:"leave_type_id" binding:"required,uuid"`
	FromDate     string  `json:"from_date" binding:"required,date"`
	ToDate       string  `json:"to_date" binding:"required,date"`
	DurationType string  `json:"duration_type" binding:"required,oneof=FULL_DAY HALF_DAY QUARTER_DAY HOURLY"`
	Slot         string  `json:"slot"`
	StartTime    string  `json:"start_time" binding:"omitempty,clock"`
	EndTime      string  `json:"end_time" binding:"omitempty,clock"`
	Reason       *string `json:"reason"`
}

type RejectLeaveRequest struct {
	Reason *string `json:"reason"`
}

type HRCancelLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type LeaveRequestResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	EmployeeID     string  `json:"employee_id"`
	LeaveTypeID    string  `json:"leave_type_id"`
	FromDate       string  `json:"from_date"`
	ToDate         string  `json:"to_date"`
	DurationType   string  `json:"duration_type"`
	DurationValue  string  `json:"duration_value"`
	StartTime      *string `json:"start_time,omitempty"`
	EndTime        *string `json:"end_time,omitempty"`
	SandwichDays   int     `json:"sandwich_days"`
	DayCost        string  `json:"day_cost"`
	Status         string  `json:"status"`
	Reason         *string `json:"reason,omitempty"`
	DecisionReason *string `json:"decision_reason,omitempty"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	ApprovedAt     *string `json:"approved_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type BalanceResponse struct {
	LeaveTypeID    string `json:"leave_type_id"`
	LeaveTypeCode  string `json:"leave_type_code,omitempty"`
	LeaveTypeName  string `json:"leave_type_name,omitempty"`
	Year           int    `json:"year"`
	Allocated      string `json:"allocated"`
	CarriedForward string `json:"carried_forward"`
	Used           string `json:"used"`
	Remaining      string `json:"remaining"`
}

type EncashmentRequest struct {
	LeaveTypeID string          `json:"leave_type_id" binding:"required,uuid"`
	Year        int             `json:"year" binding:"required,min=2000"`
	Days        decimal.Decimal `json:"days"`
}

type EncashmentResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	Year        int     `json:"year"`
	Days        string  `json:"days"`
	Status      string  `json:"status"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
}

type CreateLeaveTypeRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required,max=20"`
	IsPaid *bool  `json:"is_paid"`
}

type UpdateLeaveTypeRequest struct {
	Name     *string `json:"name"`
	IsPaid   *bool   `json:"is_paid"`
	IsActive *bool   `json:"is_active"`
}

type LeaveTypeResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsPaid   bool   `json:"is_paid"`
	IsActive bool   `json:"is_active"`
}

type UpsertPolicyRequest struct {
	LeaveTypeID       string           `json:"leave_type_id" binding:"required,uuid"`
	Year              int              `json:"year" binding:"required"`
	YearlyAllocation  decimal.Decimal  `json:"yearly_allocation"`
	AllowCarryForward bool             `json:"allow_carry_forward"`
	MaxCarryForward   *decimal.Decimal `json:"max_carry_forward"`
	AllowEncashment   bool             `json:"allow_encashment"`
	ProbationAllowed  *bool            `json:"probation_allowed"`
	GenderRestriction *string          `json:"gender_restriction"`
	MonthlyAccrual    bool             `json:"monthly_accrual"`
	SandwichRule      bool             `json:"sandwich_rule"`
}

type PolicyResponse struct {
	ID                string  `json:"id"`
	LeaveTypeID       string  `json:"leave_type_id"`
	Year              int     `json:"year"`
	YearlyAllocation  string  `json:"yearly_allocation"`
	AllowCarryForward bool    `json:"allow_carry_forward"`
	MaxCarryForward   *string `json:"max_carry_forward,omitempty"`
	AllowEncashment   bool    `json:"allow_encashment"`
	ProbationAllowed  bool    `json:"probation_allowed"`
	GenderRestriction *string `json:"gender_restriction,omitempty"`
	MonthlyAccrual    bool    `json:"monthly_accrual"`
	SandwichRule      bool    `json:"sandwich_rule"`
}

type UpsertOverrideRequest struct {
	EmployeeID      string           `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID     string           `json:"leave_type_id" binding:"required,uuid"`
	Year            int              `json:"year" binding:"required,min=2000"`
	AllowSandwich   *bool            `json:"allow_sandwich"`
	AllowEncashment *bool            `json:"allow_encashment"`
	ExtraAllocation *decimal.Decimal `json:"extra_allocation"`
}

type OverrideResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	Year            int     `json:"year"`
	AllowSandwich   *bool   `json:"allow_sandwich,omitempty"`
	AllowEncashment *bool   `json:"allow_encashment,omitempty"`
	ExtraAllocation *string `json:"extra_allocation,omitempty"`
}

type CreateHolidayRequest struct {
	Name string `json:"name" binding:"required"`
	Date string `json:"date" binding:"required"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

type AllocateBalanceRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Year        int    `json:"year" binding:"required,min=2000"`
	AsOf        string `json:"as_of"`
}
