package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer membuat enforcer dari file model saja.
// Policy tidak dibaca dari file, rbac.Service yang memuatnya.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
