package app

import (
	"log"
	"os"

	"nexushr/internal/attendance"
	"nexushr/internal/employee"
	"nexushr/internal/holiday"
	"nexushr/internal/leave"
	"nexushr/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	log.Println("✅ Database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	log.Println("✅ Redis connection established")

	if err := autoMigrate(gormDB); err != nil {
		return err
	}

	if err := seedDefaults(gormDB); err != nil {
		return err
	}

	// Register Modules & Routes
	return registerModules(router, sqlDB, gormDB, redisClient)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&attendance.Attendance{},
		&leave.Leave{},
		&holiday.Holiday{},
	)
}
