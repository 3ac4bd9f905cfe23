package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	EventLeaveApproved       = "leave_approved"
	EventLeaveCancelled      = "leave_cancelled"
	EventEncashmentApproved  = "encashment_approved"
	AggregateLeaveRequest    = "leave_request"
	AggregateLeaveEncashment = "leave_encashment"
)

// LeaveLifecycleEvent is emitted whenever a ledger mutation commits.
// Dates are YYYY-MM-DD in UTC; DayCost is a decimal string.
type LeaveLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveRequestID string    `json:"leave_request_id,omitempty"`
	EncashmentID   string    `json:"encashment_id,omitempty"`
	CompanyID      string    `json:"company_id"`
	EmployeeID     string    `json:"employee_id"`
	LeaveTypeID    string    `json:"leave_type_id"`
	Year           int       `json:"year"`
	DurationType   string    `json:"duration_type,omitempty"`
	FromDate       string    `json:"from_date,omitempty"`
	ToDate         string    `json:"to_date,omitempty"`
	DayCost        string    `json:"day_cost"`
	OccurredAt     time.Time `json:"occurred_at"`
}
