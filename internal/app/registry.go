package app

import (
	"time"

	"github.com/anubhawdwd/hrms-be/internal/attendance"
	"github.com/anubhawdwd/hrms-be/internal/company"
	"github.com/anubhawdwd/hrms-be/internal/config"
	"github.com/anubhawdwd/hrms-be/internal/employee"
	"github.com/anubhawdwd/hrms-be/internal/leave"
	"github.com/anubhawdwd/hrms-be/internal/messaging/kafka"
	"github.com/anubhawdwd/hrms-be/internal/middleware"
	"github.com/anubhawdwd/hrms-be/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idempotencyTTL = 24 * time.Hour

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	companyRepo := company.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC ---
	rbacService, err := rbac.NewService(logger)
	if err != nil {
		return err
	}

	// --- Services ---
	companyService := company.NewService(companyRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, leave.NewLedger(db), employeeRepo, outboxRepo, logger)
	officeCache := attendance.NewOfficeCache(attendanceRepo, rdb, cfg.Attendance.OfficeCacheTTL, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, leaveRepo, officeCache, companyService, logger)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	auth := middleware.AuthMiddleware(cfg.JWT.Secret)
	idempotency := middleware.Idempotency(rdb, idempotencyTTL, logger)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		company.RegisterRoutes(api, companyHandler, auth, rbacService)
		leave.RegisterRoutes(api, leaveHandler, auth, rbacService, idempotency)
		attendance.RegisterRoutes(api, attendanceHandler, auth, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, auth, func(resource, action string) gin.HandlerFunc {
			return middleware.RBACAuthorize(rbacService, resource, action)
		})
	}

	return nil
}
