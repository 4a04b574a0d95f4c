package app

import (
	"database/sql"
	"path/filepath"

	"tourhr/internal/approval"
	"tourhr/internal/directory"
	"tourhr/internal/leave"
	"tourhr/internal/leavebalance"
	"tourhr/internal/leavetype"
	"tourhr/internal/messaging/kafka"
	"tourhr/internal/rbac"
	"tourhr/internal/rbac/infra"
	"tourhr/internal/trip"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	directoryRepo := directory.NewRepository(gormDB)
	tripRepo := trip.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	approvalRepo := approval.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	ledger := leavebalance.NewLedger(leaveBalanceRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	leaveBalanceService := leavebalance.NewService(leaveBalanceRepo, leaveTypeRepo)
	approvalService := approval.NewService(db, approvalRepo, directoryRepo, outboxRepo)
	leaveService := leave.NewService(
		db,
		leaveRepo,
		leaveTypeRepo,
		ledger,
		approvalService,
		tripRepo,
		directoryRepo,
		outboxRepo,
	)

	// --- Handlers ---
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveBalanceHandler := leavebalance.NewHandler(leaveBalanceService)
	approvalHandler := approval.NewHandler(approvalService)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler, rbacService)
		approval.RegisterRoutes(api, approvalHandler, rbacService, rdb)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
	}

	return nil
}
