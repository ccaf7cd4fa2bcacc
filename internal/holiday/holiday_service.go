package holiday

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"nexushr/internal/calendar"
	holidayerrors "nexushr/internal/holiday/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const HolidayListKey = "holidays:all"

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	// SetInRange loads the holidays falling inside [start, end] as a
	// lookup set for working-day classification.
	SetInRange(ctx context.Context, start, end time.Time) (calendar.HolidaySet, error)
	NextAfter(ctx context.Context, date time.Time) (*HolidayResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse(calendar.DateLayout, req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create holiday begin tx failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByDate(ctx, date)
	if err != nil {
		return HolidayResponse{}, err
	}
	if existing != nil {
		return HolidayResponse{}, holidayerrors.ErrDuplicateDate
	}

	h := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
	}
	if err := qtx.Create(ctx, h); err != nil {
		// Two concurrent creates can both pass the pre-check; the unique
		// index settles the race.
		if isUniqueDateViolation(err) {
			return HolidayResponse{}, holidayerrors.ErrDuplicateDate
		}
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create holiday commit failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	// --- Invalidation Cache ---
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, HolidayListKey).Err(); err != nil {
			s.logger.Warn("invalidate holiday list cache failed", zap.Error(err))
		}
	}

	s.logger.Info("create holiday success",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.Date),
	)
	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, HolidayListKey).Result()
		if err == nil {
			var resp []HolidayResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(HolidayListKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		resp := make([]HolidayResponse, len(rows))
		for i, h := range rows {
			resp[i] = mapToResponse(h)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, HolidayListKey, jsonData, 5*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]HolidayResponse), nil
}

func (s *service) SetInRange(ctx context.Context, start, end time.Time) (calendar.HolidaySet, error) {
	rows, err := s.repo.ListInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(rows))
	for i, h := range rows {
		dates[i] = h.Date
	}
	return calendar.NewHolidaySet(dates), nil
}

func (s *service) NextAfter(ctx context.Context, date time.Time) (*HolidayResponse, error) {
	h, err := s.repo.FindNextAfter(ctx, date)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}
	resp := mapToResponse(*h)
	return &resp, nil
}

func isUniqueDateViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_holidays_date"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_holidays_date")
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format(calendar.DateLayout),
		Description: h.Description,
	}
}
