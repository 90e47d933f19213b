package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go-ess/internal/account"
	"go-ess/internal/dashboard"
	"go-ess/internal/document"
	"go-ess/internal/messaging/kafka"
	"go-ess/internal/middleware"
	"go-ess/internal/notification"
	"go-ess/internal/payslip"
	"go-ess/internal/profile"
	"go-ess/internal/reimbursement"
	"go-ess/internal/salaryadvance"
	"go-ess/internal/shared/config"
	"go-ess/internal/shared/counter"
	"go-ess/internal/shared/money"
	"go-ess/internal/shared/response"
	"go-ess/internal/taxcalc"
	"go-ess/internal/upstream"
	"go-ess/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modules struct {
	resolvers *account.Registry
}

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) (*modules, error) {
	logger := zap.L()
	formatter := money.NewFormatter(cfg.Locale, cfg.Currency)
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	// --- Infrastructure ---
	client := upstream.NewClient(cfg.Upstream, upstream.WithLogger(logger))
	profiles := profile.NewStore(client)
	store := document.NewStore(gormDB)
	counterRepo := counter.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	resolvers := account.NewRegistry(client.ResolveAccount, cfg.ResolveDebounce, logger)
	go resolvers.Run(ctx)

	// --- Services ---
	payslipService := payslip.NewService(client, rdb, formatter, logger)
	dashboardService := dashboard.NewService(client, payslipService, formatter, logger)
	taxService := taxcalc.NewService(store, formatter, logger)
	reimbursementService := reimbursement.NewService(db, store, counterRepo, outboxRepo, formatter, logger)
	advanceService := salaryadvance.NewService(db, store, outboxRepo, formatter, logger)
	notificationService := notification.NewService(store, loc, logger)
	accountService := account.NewService(client, profiles, store, resolvers, rdb, logger)

	flows := wizard.NewRegistry(
		taxcalc.PAYEFlow(formatter),
		taxcalc.RentReliefFlow(taxService, formatter),
		reimbursement.Flow(reimbursementService, time.Now),
		salaryadvance.Flow(advanceService, formatter),
	)
	wizardService := wizard.NewService(flows, wizard.NewSessionStore(rdb), logger)

	// --- Handlers ---
	payslipHandler := payslip.NewHandler(payslipService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	taxHandler := taxcalc.NewHandler(taxService)
	reimbursementHandler := reimbursement.NewHandler(reimbursementService, rdb)
	advanceHandler := salaryadvance.NewHandler(advanceService, rdb)
	notificationHandler := notification.NewHandler(notificationService)
	accountHandler := account.NewHandler(accountService, rdb)
	wizardHandler := wizard.NewHandler(wizardService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		dashboard.RegisterRoutes(api, dashboardHandler)
		payslip.RegisterRoutes(api, payslipHandler)
		taxcalc.RegisterRoutes(api, taxHandler)
		reimbursement.RegisterRoutes(api, reimbursementHandler, rdb)
		salaryadvance.RegisterRoutes(api, advanceHandler, rdb)
		notification.RegisterRoutes(api, notificationHandler)
		account.RegisterRoutes(api, accountHandler, rdb)
		wizard.RegisterRoutes(api, wizardHandler, rdb)
	}

	router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"wizards": flows.Names()}, nil)
	})

	return &modules{resolvers: resolvers}, nil
}
