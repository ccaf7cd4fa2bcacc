package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "Present"
	StatusLate    = "Late"
	StatusHalfDay = "Half-day"
	StatusAbsent  = "Absent"
)

// Attendance is keyed naturally by (employee_id, attendance_date): at most
// one record per employee per day. OutTime is only ever set after InTime.
type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	Status         string     `gorm:"column:status;type:varchar(20);not null"`
	InTime         time.Time  `gorm:"column:in_time;type:timestamptz;not null"`
	OutTime        *time.Time `gorm:"column:out_time;type:timestamptz"`
	WorkHours      *string    `gorm:"column:work_hours;type:varchar(20)"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
