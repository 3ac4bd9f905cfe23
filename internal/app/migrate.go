package app

import (
	"github.com/anubhawdwd/hrms-be/internal/attendance"
	"github.com/anubhawdwd/hrms-be/internal/company"
	"github.com/anubhawdwd/hrms-be/internal/employee"
	"github.com/anubhawdwd/hrms-be/internal/leave"
	"github.com/anubhawdwd/hrms-be/internal/messaging/kafka"

	"gorm.io/gorm"
)

// AutoMigrate is meant for local development; production schemas are managed
// by migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&company.Company{},
		&employee.Employee{},

		&leave.LeaveType{},
		&leave.LeavePolicy{},
		&leave.EmployeeLeaveOverride{},
		&leave.Holiday{},
		&leave.LeaveBalance{},
		&leave.LeaveRequest{},
		&leave.LeaveEncashment{},

		&attendance.OfficeLocation{},
		&attendance.DesignationAttendancePolicy{},
		&attendance.EmployeeAttendanceOverride{},
		&attendance.AttendanceDay{},
		&attendance.AttendanceEvent{},
		&attendance.AttendanceViolation{},

		&kafka.OutboxEvent{},
	)
}
