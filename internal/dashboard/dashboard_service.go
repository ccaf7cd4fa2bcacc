package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nexushr/internal/calendar"
	"nexushr/internal/employee"
	"nexushr/internal/holiday"
	"nexushr/internal/scope"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// The attendance gauge looks back thirty days and rates the count against a
// nominal 22-working-day month.
const (
	attendanceWindowDays = 30
	nominalWorkingDays   = 22
	statsCacheTTL        = 60 * time.Second
)

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	GetStats(ctx context.Context, viewer scope.Viewer) (StatsResponse, error)
}

type service struct {
	repo     Repository
	holidays holiday.Service
	rdb      *redis.Client
	sf       *singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, holidays holiday.Service, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:     repo,
		holidays: holidays,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) GetStats(ctx context.Context, viewer scope.Viewer) (StatsResponse, error) {
	key := statsCacheKey(viewer)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var resp StatsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		resp, err := s.buildStats(ctx, viewer)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, key, jsonData, statsCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return StatsResponse{}, err
	}
	return v.(StatsResponse), nil
}

func (s *service) buildStats(ctx context.Context, viewer scope.Viewer) (StatsResponse, error) {
	now := s.now()
	today := calendar.Truncate(now)
	windowStart := today.AddDate(0, 0, -attendanceWindowDays)

	var resp StatsResponse

	if viewer.EmployeeID != "" {
		attended, err := s.repo.CountAttendedDays(ctx, viewer.EmployeeID, windowStart, today)
		if err != nil {
			return StatsResponse{}, err
		}
		resp.AttendancePercentage = attendancePercentage(attended)

		pending, err := s.repo.CountPendingLeaves(ctx, viewer.EmployeeID)
		if err != nil {
			return StatsResponse{}, err
		}
		resp.PendingLeaves = pending
	}

	next, err := s.holidays.NextAfter(ctx, today)
	if err != nil {
		return StatsResponse{}, err
	}
	if next != nil {
		label := fmt.Sprintf("%s (%s)", next.Name, next.Date)
		resp.NextHoliday = &label
	}

	if viewer.All {
		total, err := s.repo.CountEmployees(ctx, employee.RoleEmployee)
		if err != nil {
			return StatsResponse{}, err
		}
		present, err := s.repo.CountPresentOn(ctx, today)
		if err != nil {
			return StatsResponse{}, err
		}
		onLeave, err := s.repo.CountOnApprovedLeave(ctx, today)
		if err != nil {
			return StatsResponse{}, err
		}
		pending, err := s.repo.CountAllPendingLeaves(ctx)
		if err != nil {
			return StatsResponse{}, err
		}

		resp.TotalEmployees = &total
		resp.PresentToday = &present
		resp.OnLeaveToday = &onLeave
		resp.PendingLeaves = pending
	}

	return resp, nil
}

func attendancePercentage(attended int64) float64 {
	pct := decimal.NewFromInt(attended).
		Div(decimal.NewFromInt(nominalWorkingDays)).
		Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return pct.Round(2).InexactFloat64()
}

func statsCacheKey(viewer scope.Viewer) string {
	if viewer.All {
		return fmt.Sprintf("dashboard:stats:admin:%s", viewer.EmployeeID)
	}
	return fmt.Sprintf("dashboard:stats:%s", viewer.EmployeeID)
}
