package events

import "time"

const PayrollPayslipRequestedTopic = "hr.payroll.payslip.requested.v1"

type PayrollPayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	EmployeeID  string    `json:"employee_id"`
	Month       string    `json:"month"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
