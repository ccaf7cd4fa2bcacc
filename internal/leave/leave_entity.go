package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"

	DefaultLeaveType = "Annual"
)

type Leave struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_leaves_employee_dates"`

	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_leaves_employee_dates"`
	Reason    string    `gorm:"column:reason;type:text;not null"`
	LeaveType string    `gorm:"column:leave_type;type:varchar(30);not null;default:Annual"`

	Status     string     `gorm:"column:status;type:varchar(20);not null;default:Pending;index"`
	AppliedAt  time.Time  `gorm:"column:applied_at;not null"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at"`
	ReviewedBy *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Leave) TableName() string {
	return "leaves"
}

type EmployeeRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
