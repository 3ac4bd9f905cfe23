package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// EffectivePolicy is a LeavePolicy with the employee override folded in.
type EffectivePolicy struct {
	Policy          LeavePolicy
	Override        *EmployeeLeaveOverride
	SandwichEnabled bool
	AllowEncashment bool
	Allocation      decimal.Decimal
}

// MergePolicy applies override on top of policy. An override may only
// disable sandwich charging; encashment and extra allocation follow the
// override whenever it sets them.
func MergePolicy(policy LeavePolicy, override *EmployeeLeaveOverride) EffectivePolicy {
	ep := EffectivePolicy{
		Policy:          policy,
		Override:        override,
		SandwichEnabled: policy.SandwichRule,
		AllowEncashment: policy.AllowEncashment,
		Allocation:      policy.YearlyAllocation,
	}
	if override == nil {
		return ep
	}
	if override.AllowSandwich != nil && !*override.AllowSandwich {
		ep.SandwichEnabled = false
	}
	if override.AllowEncashment != nil {
		ep.AllowEncashment = *override.AllowEncashment
	}
	if override.ExtraAllocation != nil {
		ep.Allocation = ep.Allocation.Add(*override.ExtraAllocation)
	}
	return ep
}

type policyReader interface {
	FindPolicy(ctx context.Context, companyID, leaveTypeID string, year int) (*LeavePolicy, error)
	FindOverride(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*EmployeeLeaveOverride, error)
}

type PolicyResolver struct {
	repo policyReader
}

func NewPolicyResolver(repo policyReader) PolicyResolver {
	return PolicyResolver{repo: repo}
}

// Resolve fails with ErrPolicyNotFound when no policy exists for the year.
func (r PolicyResolver) Resolve(ctx context.Context, companyID, leaveTypeID string, year int) (*LeavePolicy, error) {
	return r.repo.FindPolicy(ctx, companyID, leaveTypeID, year)
}

// ResolveOverride returns nil when the employee has no override.
func (r PolicyResolver) ResolveOverride(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*EmployeeLeaveOverride, error) {
	return r.repo.FindOverride(ctx, companyID, employeeID, leaveTypeID, year)
}

// Effective resolves both records and merges them.
func (r PolicyResolver) Effective(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (EffectivePolicy, error) {
	policy, err := r.Resolve(ctx, companyID, leaveTypeID, year)
	if err != nil {
		return EffectivePolicy{}, err
	}
	override, err := r.ResolveOverride(ctx, companyID, employeeID, leaveTypeID, year)
	if err != nil {
		return EffectivePolicy{}, err
	}
	return MergePolicy(*policy, override), nil
}
