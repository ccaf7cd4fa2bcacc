package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	attendanceerrors "nexushr/internal/attendance/errors"
	"nexushr/internal/calendar"
	"nexushr/internal/scope"
	"nexushr/internal/shared/keymutex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Check-ins at or before the cutoff count as Present, after it as Late.
var lateCutoff = 9*time.Hour + 30*time.Minute

const historyWindowDays = 7

type Config struct {
	// AllowWeekendCheckIn keeps Saturday/Sunday check-ins open. Some
	// deployments close them; the default leaves them open.
	AllowWeekendCheckIn bool
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	GetToday(ctx context.Context, employeeID string) (TodayResponse, error)
	GetHistory(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetAll(ctx context.Context, viewer scope.Viewer) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	cfg    Config
	locks  *keymutex.KeyMutex
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, cfg Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		cfg:    cfg,
		locks:  keymutex.New(),
		now:    time.Now,
		logger: l,
	}
}

func (s *service) CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	s.locks.Lock(employeeID)
	defer s.locks.Unlock(employeeID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := calendar.Truncate(now)

	if !s.cfg.AllowWeekendCheckIn && calendar.IsWeekend(today) {
		return AttendanceResponse{}, attendanceerrors.ErrWeekendCheckIn
	}

	// An open session on any date blocks a new check-in: the employee
	// either forgot to check out yesterday or is already in today.
	open, err := qtx.FindOpenByEmployee(ctx, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && open != nil {
		s.logger.Warn("check-in rejected, open session exists",
			zap.String("employee_id", employeeID),
			zap.String("open_date", open.AttendanceDate.Format("2006-01-02")),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil && existing.OutTime != nil {
		return AttendanceResponse{}, attendanceerrors.ErrShiftAlreadyCompleted
	}

	status := StatusPresent
	if timeOfDay(now) > lateCutoff {
		status = StatusLate
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		AttendanceDate: today,
		Status:         status,
		InTime:         now,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("check-in persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("employee_id", employeeID),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	s.locks.Lock(employeeID)
	defer s.locks.Unlock(employeeID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := calendar.Truncate(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceResponse{}, err
	}
	if row.OutTime != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOutToday
	}

	workHours := formatWorkHours(row.InTime, now)
	row.OutTime = &now
	row.WorkHours = &workHours

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out success",
		zap.String("employee_id", employeeID),
		zap.String("work_hours", workHours),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetToday(ctx context.Context, employeeID string) (TodayResponse, error) {
	today := calendar.Truncate(s.now())

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TodayResponse{}, nil
		}
		return TodayResponse{}, err
	}

	resp := mapToResponse(*row)
	return TodayResponse{
		CheckedIn:  true,
		CheckedOut: row.OutTime != nil,
		Attendance: &resp,
	}, nil
}

func (s *service) GetHistory(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	since := calendar.Truncate(s.now()).AddDate(0, 0, -historyWindowDays)
	rows, err := s.repo.FindByEmployeeSince(ctx, employeeID, since)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetAll(ctx context.Context, viewer scope.Viewer) ([]AttendanceResponse, error) {
	if !viewer.All {
		since := calendar.Truncate(s.now()).AddDate(0, 0, -historyWindowDays)
		rows, err := s.repo.FindByEmployeeSince(ctx, viewer.EmployeeID, since)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(rows), nil
	}

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

// formatWorkHours renders the wall-clock difference as whole hours and
// minutes, truncating leftover seconds.
func formatWorkHours(in, out time.Time) string {
	total := int(out.Sub(in).Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Date:       a.AttendanceDate.Format("2006-01-02"),
		Status:     a.Status,
		InTime:     a.InTime.Format(time.RFC3339),
		WorkHours:  a.WorkHours,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.Name
	}
	if a.OutTime != nil {
		v := a.OutTime.Format(time.RFC3339)
		resp.OutTime = &v
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp
}
