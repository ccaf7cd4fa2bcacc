package rbac

import (
	"testing"

	"nexushr/internal/domain"
	"nexushr/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer("infra/model.conf")
	assert.NoError(t, err)
	svc, err := NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name    string
		role    string
		res     string
		act     string
		allowed bool
	}{
		{"employee can check in", "employee", "attendance", "create", true},
		{"employee can read own payroll", "employee", "payroll", "read", true},
		{"employee cannot review leave", "employee", "leave", "review", false},
		{"employee cannot list employees", "employee", "employee", "read_all", false},
		{"admin can review leave", "admin", "leave", "review", true},
		{"admin inherits employee permissions", "admin", "attendance", "create", true},
		{"admin can create holidays", "admin", "holiday", "create", true},
		{"unknown role denied", "intern", "attendance", "create", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.Enforce(domain.EnforceRequest{Role: tc.role, Resource: tc.res, Action: tc.act})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, ok)
		})
	}
}
