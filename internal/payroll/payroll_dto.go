package payroll

type PayrollReport struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Month        string  `json:"month"`
	BaseSalary   float64 `json:"base_salary"`
	Tax          float64 `json:"tax"`
	Deductions   float64 `json:"deductions"`
	NetSalary    float64 `json:"net_salary"`
	WorkingDays  int     `json:"working_days"`
	PresentDays  int     `json:"present_days"`
	LeaveDays    int     `json:"leave_days"`
	AbsentDays   int     `json:"absent_days"`
}

type PayslipRequestResponse struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"`
	Status     string `json:"status"`
}
