package app

import (
	"fmt"
	"log"
	"time"

	"nexushr/internal/attendance"
	"nexushr/internal/calendar"
	"nexushr/internal/employee"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	seedAdminEmail    = "admin@hrms.com"
	seedAdminPassword = "admin123"
	seedAdminSalary   = 80000.0

	seedEmployeeEmail    = "employee@hrms.com"
	seedEmployeePassword = "user123"

	seedAttendanceDays = 5
)

// seedDefaults provisions the demo accounts on an empty database so a fresh
// deployment is immediately usable. An already-populated employees table is
// left untouched.
func seedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&employee.Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin, err := seedEmployee(db, seedAdminEmail, seedAdminPassword, "System Admin", employee.RoleAdmin, "Management", "Administrator", seedAdminSalary)
	if err != nil {
		return err
	}

	emp, err := seedEmployee(db, seedEmployeeEmail, seedEmployeePassword, "Demo Employee", employee.RoleEmployee, "Engineering", "Software Engineer", employee.DefaultBaseSalary)
	if err != nil {
		return err
	}

	if err := seedAttendance(db, emp.ID); err != nil {
		return err
	}

	log.Printf("✅ Seeded demo accounts: %s, %s", admin.Email, emp.Email)
	return nil
}

func seedEmployee(db *gorm.DB, email, password, name, role, department, position string, baseSalary float64) (*employee.Employee, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	e := &employee.Employee{
		ID:         uuid.New(),
		Email:      email,
		Password:   string(hashed),
		Name:       name,
		Role:       role,
		Department: department,
		Position:   position,
		BaseSalary: baseSalary,
	}
	if err := db.Create(e).Error; err != nil {
		return nil, fmt.Errorf("seed employee %s: %w", email, err)
	}
	return e, nil
}

// seedAttendance backfills a 9-to-6 record for each of the last few days so
// the dashboard and payroll demo screens have data to show.
func seedAttendance(db *gorm.DB, employeeID uuid.UUID) error {
	today := calendar.Truncate(time.Now())
	workHours := "9h 0m"

	for i := 1; i <= seedAttendanceDays; i++ {
		day := today.AddDate(0, 0, -i)
		in := day.Add(9 * time.Hour)
		out := day.Add(18 * time.Hour)

		record := &attendance.Attendance{
			ID:             uuid.New(),
			EmployeeID:     employeeID,
			AttendanceDate: day,
			Status:         attendance.StatusPresent,
			InTime:         in,
			OutTime:        &out,
			WorkHours:      &workHours,
		}
		if err := db.Create(record).Error; err != nil {
			return fmt.Errorf("seed attendance for %s: %w", day.Format(calendar.DateLayout), err)
		}
	}
	return nil
}
