package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"nexushr/internal/attendance"
	"nexushr/internal/auth"
	"nexushr/internal/dashboard"
	"nexushr/internal/employee"
	"nexushr/internal/holiday"
	"nexushr/internal/leave"
	"nexushr/internal/messaging/kafka"
	"nexushr/internal/middleware"
	"nexushr/internal/payroll"
	"nexushr/internal/rbac"
	"nexushr/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	attendanceCfg := attendance.Config{
		AllowWeekendCheckIn: os.Getenv("ATTENDANCE_WEEKEND_CHECKIN") != "false",
	}
	attendanceService := attendance.NewService(db, attendanceRepo, attendanceCfg)
	authService := auth.NewService(employeeRepo)
	employeeService := employee.NewService(db, employeeRepo, rdb)
	holidayService := holiday.NewService(db, holidayRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo)
	payrollService := payroll.NewService(db, payrollRepo, outboxRepo, rdb)
	dashboardService := dashboard.NewService(dashboardRepo, holidayService, rdb)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	authHandler := auth.NewHandler(authService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	employeeHandler := employee.NewHandler(employeeService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	payrollHandler := payroll.NewHandler(payrollService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		payroll.RegisterRoutes(api, payrollHandler, rbacService)
	}

	return nil
}
