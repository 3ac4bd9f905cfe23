package rbac

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/anubhawdwd/hrms-be/internal/shared/contextutil"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

const (
	RoleEmployee     = "EMPLOYEE"
	RoleManager      = "MANAGER"
	RoleHR           = "HR"
	RoleCompanyAdmin = "COMPANY_ADMIN"
)

// Roles inherit every permission of the role they extend.
const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var inheritance = [][]string{
	{RoleManager, RoleEmployee},
	{RoleHR, RoleManager},
	{RoleCompanyAdmin, RoleHR},
}

var defaultPolicies = [][]string{
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "attendance", "create"},

	{RoleManager, "leave", "approve"},

	{RoleHR, "leave", "hr_cancel"},
	{RoleHR, "leave_admin", "read"},
	{RoleHR, "leave_admin", "manage"},
	{RoleHR, "attendance_admin", "read"},
	{RoleHR, "attendance_admin", "manage"},
	{RoleHR, "rbac", "read"},

	{RoleCompanyAdmin, "company", "update"},
}

type Service interface {
	Enforce(ctx context.Context, req EnforceRequest) (bool, error)
	Permissions(role string) ([]Permission, error)
	Roles() []string
}

type service struct {
	enforcer *casbin.SyncedEnforcer
	logger   *zap.Logger
}

// NewService builds an enforcer over the built-in role table.
func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicies(inheritance); err != nil {
		return nil, err
	}
	if _, err := e.AddPolicies(defaultPolicies); err != nil {
		return nil, err
	}
	l.Info("rbac policies loaded", zap.Int("policies", len(defaultPolicies)), zap.Int("roles", len(inheritance)+1))

	return &service{enforcer: e, logger: l}, nil
}

// knownRoles is ordered from least to most privileged.
var knownRoles = []string{RoleEmployee, RoleManager, RoleHR, RoleCompanyAdmin}

func normalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

func (s *service) Enforce(ctx context.Context, req EnforceRequest) (bool, error) {
	role := normalizeRole(req.Role)
	if role == "" {
		return false, nil
	}

	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("company_id", req.CompanyID),
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Permissions lists the direct and inherited grants of role, sorted.
func (s *service) Permissions(role string) ([]Permission, error) {
	rows, err := s.enforcer.GetImplicitPermissionsForUser(normalizeRole(role))
	if err != nil {
		return nil, err
	}

	perms := make([]Permission, 0, len(rows))
	for _, r := range rows {
		if len(r) < 3 {
			continue
		}
		perms = append(perms, Permission{Resource: r[1], Action: r[2]})
	}
	sort.Slice(perms, func(i, j int) bool {
		if perms[i].Resource != perms[j].Resource {
			return perms[i].Resource < perms[j].Resource
		}
		return perms[i].Action < perms[j].Action
	})
	return perms, nil
}

func (s *service) Roles() []string {
	return append([]string(nil), knownRoles...)
}

// IsKnownRole reports whether role names one of the built-in roles.
func IsKnownRole(role string) bool {
	return slices.Contains(knownRoles, normalizeRole(role))
}
