package attendance

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	InTime       string  `json:"in_time"`
	OutTime      *string `json:"out_time,omitempty"`
	WorkHours    *string `json:"work_hours,omitempty"`
}

type TodayResponse struct {
	CheckedIn  bool                `json:"checked_in"`
	CheckedOut bool                `json:"checked_out"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}
