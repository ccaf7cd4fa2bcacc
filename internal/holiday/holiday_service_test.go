package holiday

import (
	"context"
	"database/sql"
	"testing"
	"time"

	holidayerrors "nexushr/internal/holiday/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn        func(tx *sql.Tx) Repository
	createFn        func(ctx context.Context, h *Holiday) error
	findByDateFn    func(ctx context.Context, date time.Time) (*Holiday, error)
	findAllFn       func(ctx context.Context) ([]Holiday, error)
	listInRangeFn   func(ctx context.Context, start, end time.Time) ([]Holiday, error)
	findNextAfterFn func(ctx context.Context, date time.Time) (*Holiday, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, h *Holiday) error {
	return f.createFn(ctx, h)
}
func (f *fakeRepo) FindByDate(ctx context.Context, date time.Time) (*Holiday, error) {
	return f.findByDateFn(ctx, date)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Holiday, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) ListInRange(ctx context.Context, start, end time.Time) ([]Holiday, error) {
	return f.listInRangeFn(ctx, start, end)
}
func (f *fakeRepo) FindNextAfter(ctx context.Context, date time.Time) (*Holiday, error) {
	return f.findNextAfterFn(ctx, date)
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Holiday
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByDateFn = func(ctx context.Context, date time.Time) (*Holiday, error) { return nil, nil }
	repo.createFn = func(ctx context.Context, h *Holiday) error { saved = *h; return nil }

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name: "Independence Day",
		Date: "2025-08-15",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Independence Day", resp.Name)
	assert.Equal(t, "2025-08-15", resp.Date)
	assert.Equal(t, "Independence Day", saved.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateDate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByDateFn = func(ctx context.Context, date time.Time) (*Holiday, error) {
		return &Holiday{ID: uuid.New(), Name: "Existing"}, nil
	}
	repo.createFn = func(ctx context.Context, h *Holiday) error {
		t.Fatal("create must not be called for a duplicate date")
		return nil
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name: "Independence Day",
		Date: "2025-08-15",
	})
	assert.ErrorIs(t, err, holidayerrors.ErrDuplicateDate)
}

func TestService_Create_BadDate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)

	_, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name: "Broken",
		Date: "15-08-2025",
	})
	assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateFormat)
}

func TestService_SetInRange(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.listInRangeFn = func(ctx context.Context, start, end time.Time) ([]Holiday, error) {
		return []Holiday{
			{ID: uuid.New(), Name: "Independence Day", Date: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)},
		}, nil
	}

	svc := NewService(db, repo, nil)

	set, err := svc.SetInRange(context.Background(),
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
	)
	assert.NoError(t, err)
	assert.True(t, set.Contains(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, set.Contains(time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)))
}

func TestService_NextAfter(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findNextAfterFn = func(ctx context.Context, date time.Time) (*Holiday, error) {
		return &Holiday{ID: uuid.New(), Name: "New Year", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
	}

	svc := NewService(db, repo, nil)

	next, err := svc.NextAfter(context.Background(), time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.NotNil(t, next)
	assert.Equal(t, "New Year", next.Name)
	assert.Equal(t, "2026-01-01", next.Date)
}

func TestService_NextAfter_NoneScheduled(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findNextAfterFn = func(ctx context.Context, date time.Time) (*Holiday, error) { return nil, nil }

	svc := NewService(db, repo, nil)

	next, err := svc.NextAfter(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Nil(t, next)
}
