package holiday

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Holiday) error
	FindByDate(ctx context.Context, date time.Time) (*Holiday, error)
	FindAll(ctx context.Context) ([]Holiday, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
	// FindNextAfter returns the earliest holiday strictly after the given
	// date, or nil when none is scheduled.
	FindNextAfter(ctx context.Context, date time.Time) (*Holiday, error)
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

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByDate(ctx context.Context, date time.Time) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date = ?", date.Format("2006-01-02")).
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).
		Order("holiday_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListInRange(ctx context.Context, start, end time.Time) ([]Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("holiday_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindNextAfter(ctx context.Context, date time.Time) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date > ?", date.Format("2006-01-02")).
		Order("holiday_date ASC").
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}
