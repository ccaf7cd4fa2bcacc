package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	attendanceerrors "nexushr/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	createFn                func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	findOpenByEmployeeFn    func(ctx context.Context, employeeID string) (*Attendance, error)
	findByEmployeeSinceFn   func(ctx context.Context, employeeID string, since time.Time) ([]Attendance, error)
	findAllFn               func(ctx context.Context) ([]Attendance, error)
	updateFn                func(ctx context.Context, a *Attendance) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	return f.createFn(ctx, a)
}
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindOpenByEmployee(ctx context.Context, employeeID string) (*Attendance, error) {
	return f.findOpenByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]Attendance, error) {
	return f.findByEmployeeSinceFn(ctx, employeeID, since)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Attendance, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error   { return f.updateFn(ctx, a) }

// newEmptyStateRepo simulates an employee with no attendance yet: no open
// session and nothing recorded for any date.
func newEmptyStateRepo() (*fakeRepo, *Attendance) {
	saved := &Attendance{}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findOpenByEmployeeFn = func(ctx context.Context, employeeID string) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.createFn = func(ctx context.Context, a *Attendance) error { *saved = *a; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { *saved = *a; return nil }
	return repo, saved
}

func newClockedService(t *testing.T, repo Repository, cfg Config, at time.Time) (*service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := NewService(db, repo, cfg).(*service)
	svc.now = func() time.Time { return at }
	return svc, mock, func() { db.Close() }
}

// Monday 2025-06-02.
func workday(hour, min, sec int) time.Time {
	return time.Date(2025, 6, 2, hour, min, sec, 0, time.UTC)
}

func TestService_CheckIn_OnTimeAtCutoff(t *testing.T) {
	repo, saved := newEmptyStateRepo()
	svc, mock, closeDB := newClockedService(t, repo, Config{}, workday(9, 30, 0))
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CheckIn(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, StatusPresent, saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_LateOneSecondPastCutoff(t *testing.T) {
	repo, _ := newEmptyStateRepo()
	svc, mock, closeDB := newClockedService(t, repo, Config{}, workday(9, 30, 1))
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CheckIn(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Status)
}

func TestService_CheckIn_OpenSessionBlocked(t *testing.T) {
	repo, _ := newEmptyStateRepo()
	repo.findOpenByEmployeeFn = func(ctx context.Context, employeeID string) (*Attendance, error) {
		return &Attendance{
			ID:             uuid.New(),
			AttendanceDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			InTime:         time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		}, nil
	}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		t.Fatal("create must not run while a session is open")
		return nil
	}

	svc, mock, closeDB := newClockedService(t, repo, Config{}, workday(9, 0, 0))
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckIn(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
}

func TestService_CheckIn_CompletedShiftBlocked(t *testing.T) {
	out := workday(17, 0, 0)
	repo, _ := newEmptyStateRepo()
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{
			ID:             uuid.New(),
			AttendanceDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			InTime:         workday(8, 0, 0),
			OutTime:        &out,
		}, nil
	}

	svc, mock, closeDB := newClockedService(t, repo, Config{}, workday(18, 0, 0))
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckIn(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrShiftAlreadyCompleted)
}

func TestService_CheckIn_WeekendClosed(t *testing.T) {
	repo, _ := newEmptyStateRepo()
	// Saturday 2025-06-07
	svc, mock, closeDB := newClockedService(t, repo, Config{AllowWeekendCheckIn: false},
		time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC))
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckIn(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrWeekendCheckIn)
}

func TestService_CheckIn_WeekendOpenByDefaultConfig(t *testing.T) {
	repo, _ := newEmptyStateRepo()
	svc, mock, closeDB := newClockedService(t, repo, Config{AllowWeekendCheckIn: true},
		time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC))
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CheckIn(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
}

func TestService_CheckOut_BeforeCheckIn(t *testing.T) {
	repo, _ := newEmptyStateRepo()
	svc, mock, closeDB := newClockedService(t, repo, Config{}, workday(18, 0, 0))
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckOut(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
}

func TestService_CheckOut_Twice(t *testing.T) {
	out := workday(17, 0, 0)
	repo, _ := newEmptyStateRepo()
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New(), InTime: workday(9, 0, 0), OutTime: &out}, nil
	}

	svc, mock, closeDB := newClockedService(t, repo, Config{}, workday(18, 0, 0))
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckOut(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOutToday)
}

func TestService_CheckInThenCheckOut_WorkHours(t *testing.T) {
	employeeID := uuid.New().String()
	repo, saved := newEmptyStateRepo()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := NewService(db, repo, Config{}).(*service)
	svc.now = func() time.Time { return workday(9, 0, 0) }

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.CheckIn(context.Background(), employeeID)
	assert.NoError(t, err)

	repo.findOpenByEmployeeFn = func(ctx context.Context, id string) (*Attendance, error) {
		return saved, nil
	}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, id string, date time.Time) (*Attendance, error) {
		return saved, nil
	}

	// 9h 0m 59s on the clock; seconds are truncated
	svc.now = func() time.Time { return workday(18, 0, 59) }

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckOut(context.Background(), employeeID)
	assert.NoError(t, err)
	assert.NotNil(t, resp.WorkHours)
	assert.Equal(t, "9h 0m", *resp.WorkHours)
	assert.NotNil(t, resp.OutTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormatWorkHours(t *testing.T) {
	in := workday(9, 0, 0)

	assert.Equal(t, "9h 0m", formatWorkHours(in, workday(18, 0, 0)))
	assert.Equal(t, "8h 45m", formatWorkHours(in, workday(17, 45, 30)))
	assert.Equal(t, "0h 0m", formatWorkHours(in, workday(9, 0, 30)))
	// clock skew never yields a negative duration
	assert.Equal(t, "0h 0m", formatWorkHours(in, workday(8, 0, 0)))
}

func TestService_GetToday(t *testing.T) {
	employeeID := uuid.New().String()
	repo, _ := newEmptyStateRepo()
	svc, _, closeDB := newClockedService(t, repo, Config{}, workday(10, 0, 0))
	defer closeDB()

	resp, err := svc.GetToday(context.Background(), employeeID)
	assert.NoError(t, err)
	assert.False(t, resp.CheckedIn)
	assert.False(t, resp.CheckedOut)
	assert.Nil(t, resp.Attendance)

	row := &Attendance{ID: uuid.New(), EmployeeID: uuid.New(), InTime: workday(9, 0, 0)}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, id string, date time.Time) (*Attendance, error) {
		return row, nil
	}

	resp, err = svc.GetToday(context.Background(), employeeID)
	assert.NoError(t, err)
	assert.True(t, resp.CheckedIn)
	assert.False(t, resp.CheckedOut)
	assert.NotNil(t, resp.Attendance)
}
