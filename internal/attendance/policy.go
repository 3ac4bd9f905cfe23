package attendance

import (
	"context"
	"time"

	"github.com/anubhawdwd/hrms-be/internal/employee"
)

// Policy is the attendance mode of one employee on one day.
// Exempt and AutoPresent are never both true.
type Policy struct {
	Exempt      bool
	AutoPresent bool
}

type policyReader interface {
	FindActiveOverride(ctx context.Context, companyID, employeeID string, day time.Time) (*EmployeeAttendanceOverride, error)
	FindDesignationPolicy(ctx context.Context, companyID, designationID string) (*DesignationAttendancePolicy, error)
}

type PolicyResolver struct {
	repo policyReader
}

func NewPolicyResolver(repo policyReader) *PolicyResolver {
	return &PolicyResolver{repo: repo}
}

// Resolve prefers the employee override whose window covers day, with the
// latest valid_from winning, then the designation policy, then the zero Policy.
func (r *PolicyResolver) Resolve(ctx context.Context, emp *employee.Employee, day time.Time) (Policy, error) {
	companyID := emp.CompanyID.String()

	override, err := r.repo.FindActiveOverride(ctx, companyID, emp.ID.String(), day)
	if err != nil {
		return Policy{}, err
	}
	if override != nil {
		return Policy{Exempt: override.AttendanceExempt, AutoPresent: override.AutoPresent}, nil
	}

	if emp.DesignationID == nil {
		return Policy{}, nil
	}
	p, err := r.repo.FindDesignationPolicy(ctx, companyID, emp.DesignationID.String())
	if err != nil {
		return Policy{}, err
	}
	if p == nil {
		return Policy{}, nil
	}
	return Policy{Exempt: p.AttendanceExempt, AutoPresent: p.AutoPresent}, nil
}
