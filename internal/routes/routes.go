package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/auth"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/cache"
	"github.com/BruksfildServices01/barbershop-saas/internal/config"
	"github.com/BruksfildServices01/barbershop-saas/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-saas/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-saas/internal/middleware"
	"github.com/BruksfildServices01/barbershop-saas/internal/notify"
	"github.com/BruksfildServices01/barbershop-saas/internal/ratelimit"
	"github.com/BruksfildServices01/barbershop-saas/internal/tenant"
	ucAppointment "github.com/BruksfildServices01/barbershop-saas/internal/usecase/appointment"
	ucBarbershop "github.com/BruksfildServices01/barbershop-saas/internal/usecase/barbershop"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/ledger"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/professional"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/report"
)

const (
	AppName    = "barbershop-saas"
	AppVersion = "1.0.0"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	store cache.Store,
	recorder audit.Recorder,
	cfg *config.Config,
	log *zap.Logger,
) error {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.AccessLogMiddleware(log, cfg.TenantHeader),
		middleware.RecoveryMiddleware(log),
		middleware.CORSMiddleware(cfg.TenantHeader),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	barbershopRepo := infraRepo.NewBarbershopGormRepository(db)
	professionalRepo := infraRepo.NewProfessionalGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	serviceRepo := infraRepo.NewServiceGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	transactionRepo := infraRepo.NewTransactionGormRepository(db)
	reportRepo := infraRepo.NewReportGormRepository(db)
	auditRepo := infraRepo.NewAuditGormRepository(db)

	resolver := tenant.NewResolver(barbershopRepo, store, cfg.TenantCacheTTL, log)

	authority, err := auth.NewAuthority(
		store,
		professionalRepo,
		notify.NewLogSender(log),
		auth.Options{
			Secret:         cfg.JWTSecret,
			AccessTTL:      cfg.AccessTokenTTL,
			RefreshTTL:     cfg.RefreshTokenTTL,
			OTPTTL:         cfg.OTPTTL,
			OTPMaxAttempts: cfg.OTPMaxAttempts,
		},
		log,
	)
	if err != nil {
		return err
	}

	guard := authz.NewGuard(authz.DefaultTable())

	publicLimiter := ratelimit.New(store, "public", cfg.RateLimitPublicMax, cfg.RateLimitWindow)
	privateLimiter := ratelimit.New(store, "private", cfg.RateLimitMax, cfg.RateLimitWindow)

	paging := handlers.Paging{
		DefaultLimit: cfg.PaginationDefaultLimit,
		MaxLimit:     cfg.PaginationMaxLimit,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	shops := ucBarbershop.New(barbershopRepo, authority, resolver, recorder, ucBarbershop.Options{
		CheckEmailDomain: cfg.CheckEmailDomain,
	})
	directory := professional.New(professionalRepo, authority, recorder)
	books := ledger.New(transactionRepo, recorder)
	reports := report.New(reportRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(AppName, AppVersion, cfg.Environment, map[string]handlers.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"cache": store.Ping,
	})
	publicHandler := handlers.NewPublicHandler(shops)
	authHandler := handlers.NewAuthHandler(authority, professionalRepo, recorder, cfg.TestOTPEnabled())
	barbershopHandler := handlers.NewBarbershopHandler(shops)
	professionalHandler := handlers.NewProfessionalHandler(directory, paging)
	clientHandler := handlers.NewClientHandler(clientRepo, recorder, paging)
	serviceHandler := handlers.NewServiceHandler(serviceRepo, recorder, paging)
	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(appointmentRepo, recorder),
		ucAppointment.NewUpdateAppointment(appointmentRepo, recorder),
		ucAppointment.NewUpdateStatus(appointmentRepo, recorder),
		ucAppointment.NewDeleteAppointment(appointmentRepo, recorder),
		ucAppointment.NewGetAppointment(appointmentRepo),
		ucAppointment.NewListAppointments(appointmentRepo),
		paging,
	)
	transactionHandler := handlers.NewTransactionHandler(books, paging)
	reportHandler := handlers.NewReportHandler(reports)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditRepo, paging)

	// ======================================================
	// OPERATIONAL
	// ======================================================
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/readyz", healthHandler.Ready)

	perIP := middleware.RateLimitMiddleware(publicLimiter, middleware.ByClientIP, log)
	perProfessional := middleware.RateLimitMiddleware(privateLimiter, middleware.ByProfessional, log)
	can := func(res authz.Resource, act authz.Action) gin.HandlerFunc {
		return middleware.Authorize(guard, res, act)
	}

	api := r.Group("/api")
	{
		// ------------------------------
		// NO TENANT HEADER
		// ------------------------------
		api.POST("/barbershops", perIP, publicHandler.Register)
		api.GET("/barbershops/:slug", publicHandler.Barbershop)

		// ------------------------------
		// TENANT, NO AUTH
		// ------------------------------
		tenantAPI := api.Group("")
		tenantAPI.Use(middleware.TenantMiddleware(resolver, cfg.TenantHeader))
		{
			tenantAPI.GET("/barbershop", barbershopHandler.Get)

			authAPI := tenantAPI.Group("/auth")
			{
				authAPI.POST("/login", perIP, authHandler.Login)
				authAPI.POST("/request-otp", perIP, authHandler.RequestOTP)
				authAPI.POST("/verify-otp", perIP, authHandler.VerifyOTP)
				authAPI.POST("/refresh", perIP, authHandler.Refresh)
				authAPI.GET("/test/otp/:email", authHandler.TestOTP)
			}

			// ------------------------------
			// TENANT + AUTH
			// ------------------------------
			secured := tenantAPI.Group("")
			secured.Use(middleware.AuthMiddleware(authority), perProfessional)
			{
				secured.POST("/auth/logout", authHandler.Logout)
				secured.GET("/auth/me", authHandler.Me)

				secured.PUT("/barbershop", can(authz.Barbershop, authz.Update), barbershopHandler.Update)

				secured.GET("/professionals", can(authz.Professionals, authz.List), professionalHandler.List)
				secured.POST("/professionals", can(authz.Professionals, authz.Create), professionalHandler.Create)
				secured.GET("/professionals/:id", can(authz.Professionals, authz.Read), professionalHandler.Get)
				secured.PUT("/professionals/:id", can(authz.Professionals, authz.Update), professionalHandler.Update)
				secured.DELETE("/professionals/:id", can(authz.Professionals, authz.Delete), professionalHandler.Delete)

				secured.GET("/clients", can(authz.Clients, authz.List), clientHandler.List)
				secured.POST("/clients", can(authz.Clients, authz.Create), clientHandler.Create)
				secured.GET("/clients/:id", can(authz.Clients, authz.Read), clientHandler.Get)
				secured.PUT("/clients/:id", can(authz.Clients, authz.Update), clientHandler.Update)
				secured.DELETE("/clients/:id", can(authz.Clients, authz.Delete), clientHandler.Delete)

				secured.GET("/services", can(authz.Services, authz.List), serviceHandler.List)
				secured.POST("/services", can(authz.Services, authz.Create), serviceHandler.Create)
				secured.GET("/services/:id", can(authz.Services, authz.Read), serviceHandler.Get)
				secured.PUT("/services/:id", can(authz.Services, authz.Update), serviceHandler.Update)
				secured.DELETE("/services/:id", can(authz.Services, authz.Delete), serviceHandler.Delete)

				// ------------------------------
				// APPOINTMENTS
				// ------------------------------
				secured.GET("/appointments", can(authz.Appointments, authz.List), appointmentHandler.List)
				secured.POST("/appointments", can(authz.Appointments, authz.Create), appointmentHandler.Create)
				secured.GET("/appointments/:id", can(authz.Appointments, authz.Read), appointmentHandler.Get)
				secured.PUT("/appointments/:id", can(authz.Appointments, authz.Update), appointmentHandler.Update)
				secured.PATCH("/appointments/:id/status", can(authz.Appointments, authz.ChangeState), appointmentHandler.UpdateStatus)
				secured.DELETE("/appointments/:id", can(authz.Appointments, authz.Delete), appointmentHandler.Delete)

				// ------------------------------
				// LEDGER & REPORTS
				// ------------------------------
				secured.GET("/transactions", can(authz.Transactions, authz.List), transactionHandler.List)
				secured.POST("/transactions", can(authz.Transactions, authz.Create), transactionHandler.Create)
				secured.GET("/transactions/:id", can(authz.Transactions, authz.Read), transactionHandler.Get)
				secured.PUT("/transactions/:id", can(authz.Transactions, authz.Update), transactionHandler.Update)
				secured.DELETE("/transactions/:id", can(authz.Transactions, authz.Delete), transactionHandler.Delete)

				secured.GET("/reports/financial", can(authz.Reports, authz.Financial), reportHandler.Financial)
				secured.GET("/reports/commissions", can(authz.Reports, authz.Commissions), reportHandler.Commissions)

				secured.GET("/audit-logs", can(authz.Audit, authz.List), auditLogsHandler.List)
			}
		}
	}

	return nil
}
