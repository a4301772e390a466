package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// defaultPolicies encode the three built-in roles: employees file and cancel
// their own requests, managers additionally decide and see their team, HR
// admins manage everything.
var defaultPolicies = [][]string{
	{"employee", "leave_request", "read"},
	{"employee", "leave_request", "create"},
	{"employee", "entitlement", "read"},
	{"employee", "leave_type", "read"},
	{"employee", "calendar", "read"},

	{"manager", "leave_request", "decide"},
	{"manager", "team", "read"},
	{"manager", "adjustment", "read"},

	{"hr_admin", "leave_request", "*"},
	{"hr_admin", "entitlement", "*"},
	{"hr_admin", "adjustment", "*"},
	{"hr_admin", "employee", "*"},
	{"hr_admin", "position", "*"},
	{"hr_admin", "leave_type", "*"},
	{"hr_admin", "leave_policy", "*"},
	{"hr_admin", "calendar", "*"},
	{"hr_admin", "team", "read"},
}

var roleInheritance = [][]string{
	{"manager", "employee"},
	{"hr_admin", "manager"},
}

//go:generate mockgen -source=rbac.go -destination=mock/rbac_mock.go -package=mock
type Service interface {
	CheckPermission(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}

	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("rbac policy %v: %w", p, err)
		}
	}
	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("rbac grouping %v: %w", g, err)
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) CheckPermission(role, resource, action string) (bool, error) {
	if role == "" {
		return false, nil
	}
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}
	return allowed, nil
}
