package leave

type ApplyLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	LeaveType string `json:"leave_type"`
}

type ReviewLeaveRequest struct {
	Status string `json:"status" binding:"required"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	LeaveType    string  `json:"leave_type"`
	Status       string  `json:"status"`
	AppliedAt    string  `json:"applied_at"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
}
