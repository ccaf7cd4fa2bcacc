// Package scope resolves the viewer scope for a request once: an admin
// viewer sees every employee's records, an employee viewer only their own.
package scope

import "nexushr/internal/employee"

type Viewer struct {
	EmployeeID string
	All        bool
}

func Resolve(userID, role string) Viewer {
	return Viewer{
		EmployeeID: userID,
		All:        role == employee.RoleAdmin,
	}
}
