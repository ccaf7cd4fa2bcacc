package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	// FindOpenByEmployee returns the employee's most recent record whose
	// out_time is still unset, on any date.
	FindOpenByEmployee(ctx context.Context, employeeID string) (*Attendance, error)
	FindByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]Attendance, error)
	FindAll(ctx context.Context) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction connection so
// the read-validate-write sequence commits or rolls back as one unit.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	sess := r.db.Session(&gorm.Session{NewDB: true})
	sess.Statement.ConnPool = tx
	return &repository{db: sess}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindOpenByEmployee(ctx context.Context, employeeID string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("out_time IS NULL").
		Order("attendance_date DESC").
		First(&a).Error
	return &a, err
}

func (r *repository) FindByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date >= ?", since.Format("2006-01-02")).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("attendance_date DESC, in_time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
