package dashboard

import (
	"context"
	"time"

	"nexushr/internal/attendance"
	"nexushr/internal/employee"
	"nexushr/internal/leave"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountAttendedDays(ctx context.Context, employeeID string, start, end time.Time) (int64, error)
	CountPendingLeaves(ctx context.Context, employeeID string) (int64, error)
	CountAllPendingLeaves(ctx context.Context) (int64, error)
	CountEmployees(ctx context.Context, role string) (int64, error)
	CountPresentOn(ctx context.Context, date time.Time) (int64, error)
	CountOnApprovedLeave(ctx context.Context, date time.Time) (int64, error)
}

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

func (r *repository) CountAttendedDays(ctx context.Context, employeeID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&attendance.Attendance{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", countedStatuses).
		Where("attendance_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

func (r *repository) CountPendingLeaves(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leave.Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", leave.StatusPending).
		Count(&count).Error
	return count, err
}

func (r *repository) CountAllPendingLeaves(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&leave.Leave{}).
		Where("status = ?", leave.StatusPending).
		Count(&count).Error
	return count, err
}

func (r *repository) CountEmployees(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

func (r *repository) CountPresentOn(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&attendance.Attendance{}).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		Where("status IN ?", countedStatuses).
		Count(&count).Error
	return count, err
}

func (r *repository) CountOnApprovedLeave(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	day := date.Format("2006-01-02")
	err := r.db.WithContext(ctx).
		Model(&leave.Leave{}).
		Where("status = ?", leave.StatusApproved).
		Where("start_date <= ?", day).
		Where("end_date >= ?", day).
		Count(&count).Error
	return count, err
}
