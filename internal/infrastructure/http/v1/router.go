// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"sbreport/internal/core/security"
	"sbreport/internal/infrastructure/http/v1/handlers"
	"sbreport/internal/infrastructure/http/v1/middleware"
	"sbreport/internal/infrastructure/i18n"
	"sbreport/pkg/logger"
)

// PermissionReadSummary grants access to the serial and batch summary and its lookups.
const PermissionReadSummary = "report:serial_batch:read"

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// DB is pinged by the readiness probe
	DB handlers.Pinger

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	ReportService handlers.ReportRunner
	LookupService handlers.LookupSearcher

	// Translations localize labels; nil serves English
	Translations *i18n.Catalog

	// AccessPolicy is evaluated on every protected request; nil allows all
	AccessPolicy *security.AccessPolicy
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		protected.Use(middleware.RequirePermission(PermissionReadSummary))
		protected.Use(middleware.RequireAccess(cfg.AccessPolicy))

		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler(cfg.Translations)
	reportHandler := handlers.NewReportsHandler(baseHandler, cfg.ReportService)
	lookupHandler := handlers.NewLookupHandler(baseHandler, cfg.LookupService)

	summary := rg.Group("/reports/serial-batch-summary")
	{
		summary.GET("", reportHandler.GetSummary)
		summary.GET("/export", reportHandler.Export)
		summary.GET("/filters", reportHandler.Filters)

		lookups := summary.Group("/lookup")
		lookups.GET("/voucher-types", lookupHandler.VoucherTypes)
		lookups.GET("/serial-nos", lookupHandler.SerialNos)
		lookups.GET("/batch-nos", lookupHandler.BatchNos)
	}
}
