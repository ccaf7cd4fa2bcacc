package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nexushr/internal/calendar"
	"nexushr/internal/employee"
	"nexushr/internal/events"
	"nexushr/internal/messaging/kafka"
	payrollerrors "nexushr/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// taxRate is withheld from the full base salary every month, independent of
// attendance.
var taxRate = decimal.NewFromFloat(0.12)

// monthToDateDivisor flattens the running month's per-day rate so a report
// taken mid-month does not swing with the month length.
const monthToDateDivisor = 30

const payslipCacheTTL = 24 * time.Hour

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	// ComputePreviousMonth settles the closed previous calendar month,
	// dividing base salary by that month's actual day count.
	ComputePreviousMonth(ctx context.Context, employeeID string) (PayrollReport, error)
	// ComputeMonthToDate covers the running month up to today with a flat
	// thirty-day divisor.
	ComputeMonthToDate(ctx context.Context, employeeID string) (PayrollReport, error)
	GetAll(ctx context.Context) ([]PayrollReport, error)
	RequestPayslip(ctx context.Context, employeeID, requestedBy string) (PayslipRequestResponse, error)
	GeneratePayslip(ctx context.Context, employeeID string) ([]byte, error)
	DownloadPayslip(ctx context.Context, employeeID string) ([]byte, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		rdb:    rdb,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) ComputePreviousMonth(ctx context.Context, employeeID string) (PayrollReport, error) {
	e, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return PayrollReport{}, err
	}
	return s.previousMonthReport(ctx, *e)
}

func (s *service) ComputeMonthToDate(ctx context.Context, employeeID string) (PayrollReport, error) {
	e, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return PayrollReport{}, err
	}

	now := s.now()
	monthFirst, _, _ := calendar.MonthBounds(now)
	today := calendar.Truncate(now)

	return s.compute(ctx, *e, monthFirst, today, monthToDateDivisor)
}

func (s *service) GetAll(ctx context.Context) ([]PayrollReport, error) {
	rows, err := s.repo.FindAllEmployees(ctx, employee.RoleEmployee)
	if err != nil {
		return nil, err
	}

	reports := make([]PayrollReport, 0, len(rows))
	for _, e := range rows {
		report, err := s.previousMonthReport(ctx, e)
		if err != nil {
			s.logger.Error("compute payroll failed",
				zap.String("employee_id", e.ID.String()),
				zap.Error(err),
			)
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *service) previousMonthReport(ctx context.Context, e employee.Employee) (PayrollReport, error) {
	_, prevLast, prevFirst := calendar.MonthBounds(s.now())
	return s.compute(ctx, e, prevFirst, prevLast, calendar.DaysIn(prevFirst))
}

// compute walks every working day in [start, end] and classifies it as
// attended, covered by approved leave, or absent. Only absences are
// deducted.
func (s *service) compute(ctx context.Context, e employee.Employee, start, end time.Time, divisor int) (PayrollReport, error) {
	employeeID := e.ID.String()

	holidayDates, err := s.repo.HolidayDates(ctx, start, end)
	if err != nil {
		return PayrollReport{}, err
	}
	holidays := calendar.NewHolidaySet(holidayDates)

	attendedDates, err := s.repo.AttendedDates(ctx, employeeID, start, end)
	if err != nil {
		return PayrollReport{}, err
	}
	attended := make(map[string]struct{}, len(attendedDates))
	for _, d := range attendedDates {
		attended[calendar.DateKey(d)] = struct{}{}
	}

	leavePeriods, err := s.repo.ApprovedLeavePeriods(ctx, employeeID, start, end)
	if err != nil {
		return PayrollReport{}, err
	}

	var workingDays, presentDays, leaveDays, absentDays int
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !calendar.IsWorkingDay(d, holidays) {
			continue
		}
		workingDays++

		if _, ok := attended[calendar.DateKey(d)]; ok {
			presentDays++
			continue
		}
		if onApprovedLeave(d, leavePeriods) {
			leaveDays++
			continue
		}
		absentDays++
	}

	base := decimal.NewFromFloat(e.BaseSalary)
	perDay := base.Div(decimal.NewFromInt(int64(divisor)))
	deductions := perDay.Mul(decimal.NewFromInt(int64(absentDays)))
	tax := base.Mul(taxRate)

	net := base.Sub(deductions).Sub(tax)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return PayrollReport{
		EmployeeID:   employeeID,
		EmployeeName: e.Name,
		Month:        start.Format("January 2006"),
		BaseSalary:   base.Round(2).InexactFloat64(),
		Tax:          tax.Round(2).InexactFloat64(),
		Deductions:   deductions.Round(2).InexactFloat64(),
		NetSalary:    net.Round(2).InexactFloat64(),
		WorkingDays:  workingDays,
		PresentDays:  presentDays,
		LeaveDays:    leaveDays,
		AbsentDays:   absentDays,
	}, nil
}

func (s *service) RequestPayslip(ctx context.Context, employeeID, requestedBy string) (PayslipRequestResponse, error) {
	e, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return PayslipRequestResponse{}, err
	}

	_, _, prevFirst := calendar.MonthBounds(s.now())
	month := prevFirst.Format("January 2006")

	event := events.PayrollPayslipRequestedEvent{
		EventType:   "payroll.payslip.requested",
		EmployeeID:  e.ID.String(),
		Month:       month,
		RequestedBy: requestedBy,
		OccurredAt:  s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return PayslipRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("request payslip begin tx failed", zap.Error(err))
		return PayslipRequestResponse{}, err
	}
	defer tx.Rollback()

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "payroll",
		AggregateID:   e.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrollPayslipRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("request payslip enqueue failed", zap.Error(err))
		return PayslipRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("request payslip commit failed", zap.Error(err))
		return PayslipRequestResponse{}, err
	}

	s.logger.Info("payslip request queued",
		zap.String("employee_id", e.ID.String()),
		zap.String("month", month),
	)
	return PayslipRequestResponse{
		EmployeeID: e.ID.String(),
		Month:      month,
		Status:     "queued",
	}, nil
}

func (s *service) GeneratePayslip(ctx context.Context, employeeID string) ([]byte, error) {
	e, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	report, err := s.previousMonthReport(ctx, *e)
	if err != nil {
		return nil, err
	}

	lines := []string{
		"Payslip",
		"",
		fmt.Sprintf("Employee: %s", report.EmployeeName),
		fmt.Sprintf("Month: %s", report.Month),
		"",
		fmt.Sprintf("Base Salary: %.2f", report.BaseSalary),
		fmt.Sprintf("Tax: %.2f", report.Tax),
		fmt.Sprintf("Deductions: %.2f", report.Deductions),
		fmt.Sprintf("Net Salary: %.2f", report.NetSalary),
		"",
		fmt.Sprintf("Working Days: %d", report.WorkingDays),
		fmt.Sprintf("Present Days: %d", report.PresentDays),
		fmt.Sprintf("Leave Days: %d", report.LeaveDays),
		fmt.Sprintf("Absent Days: %d", report.AbsentDays),
	}

	pdf, err := buildPayslipPDF(lines)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		key := payslipCacheKey(report.EmployeeID, report.Month)
		if err := s.rdb.Set(ctx, key, pdf, payslipCacheTTL).Err(); err != nil {
			s.logger.Warn("cache payslip failed", zap.String("key", key), zap.Error(err))
		}
	}

	s.logger.Info("payslip generated",
		zap.String("employee_id", report.EmployeeID),
		zap.String("month", report.Month),
	)
	return pdf, nil
}

func (s *service) DownloadPayslip(ctx context.Context, employeeID string) ([]byte, error) {
	if s.rdb != nil {
		_, _, prevFirst := calendar.MonthBounds(s.now())
		key := payslipCacheKey(employeeID, prevFirst.Format("January 2006"))
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}
	return s.GeneratePayslip(ctx, employeeID)
}

func (s *service) findEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}
	e, err := s.repo.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return e, nil
}

// onApprovedLeave matches on calendar dates; the walk date carries the
// clock's zone while period bounds come back from the store as UTC midnights.
func onApprovedLeave(date time.Time, periods []LeavePeriod) bool {
	key := calendar.DateKey(date)
	for _, p := range periods {
		if key >= calendar.DateKey(p.Start) && key <= calendar.DateKey(p.End) {
			return true
		}
	}
	return false
}

func payslipCacheKey(employeeID, month string) string {
	return fmt.Sprintf("payslips:%s:%s", employeeID, month)
}
