package dashboard

// StatsResponse carries the employee card set; admin viewers additionally
// get the company-wide counters.
type StatsResponse struct {
	AttendancePercentage float64 `json:"attendance_percentage"`
	PendingLeaves        int64   `json:"pending_leaves"`
	NextHoliday          *string `json:"next_holiday"`

	TotalEmployees *int64 `json:"total_employees,omitempty"`
	PresentToday   *int64 `json:"present_today,omitempty"`
	OnLeaveToday   *int64 `json:"on_leave_today,omitempty"`
}
