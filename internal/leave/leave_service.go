package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"nexushr/internal/calendar"
	leaveerrors "nexushr/internal/leave/errors"
	"nexushr/internal/scope"
	"nexushr/internal/shared/keymutex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, viewer scope.Viewer) ([]LeaveResponse, error)
	Review(ctx context.Context, id, reviewerID string, req ReviewLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	locks  *keymutex.KeyMutex
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		locks:  keymutex.New(),
		now:    time.Now,
		logger: l,
	}
}

// Apply validates and persists a new Pending request. The overlap check and
// the insert run under one lock + transaction so two overlapping submissions
// cannot both pass validation.
func (s *service) Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply leave requested",
		zap.String("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	if end.Before(start) {
		return LeaveResponse{}, leaveerrors.ErrEndBeforeStart
	}

	now := s.now()
	// Compare calendar dates; start is parsed as UTC midnight while the
	// clock runs in the server zone, so instant comparison would shift days.
	if calendar.DateKey(start) < calendar.DateKey(now) {
		return LeaveResponse{}, leaveerrors.ErrRetroactiveRequest
	}

	s.locks.Lock(employeeID)
	defer s.locks.Unlock(employeeID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	conflict, err := qtx.FindFirstOverlapping(ctx, employeeID, start, end,
		[]string{StatusPending, StatusApproved})
	if err != nil {
		s.logger.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if conflict != nil {
		s.logger.Warn("apply leave overlap detected",
			zap.String("employee_id", employeeID),
			zap.String("conflicting_status", conflict.Status),
		)
		return LeaveResponse{}, leaveerrors.Overlapping(
			conflict.Status,
			conflict.StartDate.Format("2006-01-02"),
			conflict.EndDate.Format("2006-01-02"),
		)
	}

	leaveType := req.LeaveType
	if leaveType == "" {
		leaveType = DefaultLeaveType
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		LeaveType:  leaveType,
		Status:     StatusPending,
		AppliedAt:  now,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, viewer scope.Viewer) ([]LeaveResponse, error) {
	var (
		rows []Leave
		err  error
	)
	if viewer.All {
		rows, err = s.repo.FindAll(ctx)
	} else {
		rows, err = s.repo.FindAllByEmployee(ctx, viewer.EmployeeID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// Review settles a Pending request exactly once. A second review attempt is
// rejected rather than silently overriding the earlier decision.
func (s *service) Review(ctx context.Context, id, reviewerID string, req ReviewLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("review leave requested",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("target_status", req.Status),
	)

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidReviewerID
	}
	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidReviewStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("review leave rejected, already reviewed",
			zap.String("leave_id", id),
			zap.String("current_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}

	now := s.now()
	l.Status = req.Status
	l.ReviewedAt = &now
	l.ReviewedBy = &reviewerUUID

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("review leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("review leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Reason:     l.Reason,
		LeaveType:  l.LeaveType,
		Status:     l.Status,
		AppliedAt:  l.AppliedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.Name
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	return resp
}

func mapToListResponse(rows []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		resp[i] = mapToResponse(l)
	}
	return resp
}
