package rbac

import (
	"sync"

	"nexushr/internal/domain"

	"github.com/casbin/casbin/v2"
)

// Policy is static: the system knows exactly two roles. Admins hold every
// employee permission plus the review/management surface.
var rolePolicies = [][3]string{
	{"employee", "attendance", "create"},
	{"employee", "attendance", "read"},
	{"employee", "leave", "create"},
	{"employee", "leave", "read"},
	{"employee", "holiday", "read"},
	{"employee", "payroll", "read"},
	{"employee", "dashboard", "read"},

	{"admin", "leave", "review"},
	{"admin", "employee", "create"},
	{"admin", "employee", "read_all"},
	{"admin", "holiday", "create"},
	{"admin", "payroll", "read_all"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.loadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicy() error {
	s.enforcer.ClearPolicy()

	// admin inherits the employee role
	if _, err := s.enforcer.AddGroupingPolicy("admin", "employee"); err != nil {
		return err
	}
	for _, p := range rolePolicies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
