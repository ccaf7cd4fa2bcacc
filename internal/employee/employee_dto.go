package employee

type CreateEmployeeRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6"`
	Name       string  `json:"name" binding:"required"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Phone      *string `json:"phone"`
	BaseSalary float64 `json:"base_salary"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Phone      *string `json:"phone,omitempty"`
	BaseSalary float64 `json:"base_salary"`
}
