package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"

	DefaultBaseSalary = 50000.0
)

type Employee struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Email      string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Password   string    `gorm:"column:password;type:varchar(255);not null"`
	Name       string    `gorm:"column:name;type:varchar(120);not null"`
	Role       string    `gorm:"column:role;type:varchar(20);not null;default:employee"`
	Department string    `gorm:"column:department;type:varchar(100);not null;default:General"`
	Position   string    `gorm:"column:position;type:varchar(100);not null;default:Staff"`
	Phone      *string   `gorm:"column:phone;type:varchar(30)"`
	BaseSalary float64   `gorm:"column:base_salary;not null;default:50000"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
