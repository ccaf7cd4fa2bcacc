package payroll

import (
	"context"
	"database/sql"
	"time"

	"nexushr/internal/attendance"
	"nexushr/internal/employee"
	"nexushr/internal/holiday"
	"nexushr/internal/leave"

	"gorm.io/gorm"
)

// LeavePeriod is an approved leave window, inclusive on both ends.
type LeavePeriod struct {
	Start time.Time
	End   time.Time
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindEmployee(ctx context.Context, id string) (*employee.Employee, error)
	FindAllEmployees(ctx context.Context, role string) ([]employee.Employee, error)
	// AttendedDates lists the dates inside [start, end] on which the
	// employee has a counted attendance record.
	AttendedDates(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error)
	ApprovedLeavePeriods(ctx context.Context, employeeID string, start, end time.Time) ([]LeavePeriod, error)
	HolidayDates(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

// countedStatuses are the attendance statuses that count as a worked day.
var countedStatuses = []string{
	attendance.StatusPresent,
	attendance.StatusLate,
	attendance.StatusHalfDay,
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	sess := r.db.Session(&gorm.Session{NewDB: true})
	sess.Statement.ConnPool = tx
	return &repository{db: sess}
}

func (r *repository) FindEmployee(ctx context.Context, id string) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&e).Error
	return &e, err
}

func (r *repository) FindAllEmployees(ctx context.Context, role string) ([]employee.Employee, error) {
	var rows []employee.Employee
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) AttendedDates(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error) {
	var rows []attendance.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", countedStatuses).
		Where("attendance_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("attendance_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(rows))
	for i, a := range rows {
		dates[i] = a.AttendanceDate
	}
	return dates, nil
}

func (r *repository) ApprovedLeavePeriods(ctx context.Context, employeeID string, start, end time.Time) ([]LeavePeriod, error) {
	var rows []leave.Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", leave.StatusApproved).
		Where("start_date <= ?", end.Format("2006-01-02")).
		Where("end_date >= ?", start.Format("2006-01-02")).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	periods := make([]LeavePeriod, len(rows))
	for i, l := range rows {
		periods[i] = LeavePeriod{Start: l.StartDate, End: l.EndDate}
	}
	return periods, nil
}

func (r *repository) HolidayDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	var rows []holiday.Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(rows))
	for i, h := range rows {
		dates[i] = h.Date
	}
	return dates, nil
}
