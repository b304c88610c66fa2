package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/samadhan-cg/samadhan-api/api/swagger"
	"github.com/samadhan-cg/samadhan-api/internal/handler"
	"github.com/samadhan-cg/samadhan-api/internal/middleware"
	"github.com/samadhan-cg/samadhan-api/internal/repository"
	"github.com/samadhan-cg/samadhan-api/internal/service"
	"github.com/samadhan-cg/samadhan-api/pkg/cache"
	"github.com/samadhan-cg/samadhan-api/pkg/config"
	"github.com/samadhan-cg/samadhan-api/pkg/database"
	"github.com/samadhan-cg/samadhan-api/pkg/export"
	"github.com/samadhan-cg/samadhan-api/pkg/logger"
	corsmiddleware "github.com/samadhan-cg/samadhan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/samadhan-cg/samadhan-api/pkg/middleware/requestid"
)

// @title Samadhan Complaint API
// @version 1.0.0
// @description Grievance-redressal complaint tracking backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// Redis is optional: without it the dashboard reads straight from the store.
	var cacheRepo *repository.CacheRepository
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && cacheRepo != nil)

	complaintRepo := repository.NewComplaintRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	complaintSvc := service.NewComplaintService(complaintRepo, cacheSvc, logr, cfg.Stats.RecentLimit)
	exportSvc := service.NewExportService(complaintSvc, export.NewCSVExporter(), export.NewPDFExporter())
	statsSvc := service.NewStatsService(snapshotRepo, historyRepo, complaintRepo, cacheSvc, metricsSvc, logr, cfg.Stats.PlaceholderData)
	dashboardSvc := service.NewDashboardService(snapshotRepo, complaintRepo, cacheSvc, metricsSvc, cfg.Dashboard.CacheTTL, logr)
	authSvc := service.NewAuthService(adminRepo, cfg.JWT, logr)
	adminSvc := service.NewAdminService(adminRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)
	complaintHandler := handler.NewComplaintHandler(complaintSvc, exportSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.Identify(authSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	r.POST("/admin/login", authHandler.Login)

	api := r.Group("/api")
	{
		api.GET("/admin", adminHandler.Get)
		api.POST("/admin/create", adminHandler.Create)
		api.PUT("/admin/update-profile", adminHandler.UpdateProfile)
		api.GET("/suggestions", complaintHandler.Suggestions)
	}

	complaints := r.Group("/complaints")
	{
		complaints.POST("/add-complaint", complaintHandler.Add)
		complaints.POST("/lookup", complaintHandler.Lookup)
		complaints.POST("/officer", complaintHandler.Officer)
	}

	r.GET("/recent", complaintHandler.Recent)
	r.GET("/recent/export", complaintHandler.Export)

	r.POST("/updateStats", statsHandler.Update)

	stats := r.Group("/stats")
	{
		stats.GET("/portal/:name", statsHandler.Portal)
		stats.GET("/latest", statsHandler.Latest)
		stats.GET("/summary-graph", statsHandler.SummaryGraph)
		stats.GET("/departments", statsHandler.Departments)
		stats.GET("/realtime", statsHandler.Realtime)
		stats.GET("/top-departments", statsHandler.TopDepartments)
		stats.GET("/department-graph", statsHandler.DepartmentGraph)
		stats.GET("/department-name-graph", statsHandler.DepartmentNameGraph)
		stats.GET("/department-history", statsHandler.DepartmentHistory)
		stats.GET("/main-department-graph", statsHandler.MainDepartmentGraph)
		stats.GET("/history/:id", statsHandler.History)
		stats.GET("/all-history", statsHandler.AllHistory)
	}

	r.GET("/dashboard", dashboardHandler.Summary)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
