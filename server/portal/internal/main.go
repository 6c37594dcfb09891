package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abdhfz93/sipdesk/pkg/blobstore"
	"github.com/abdhfz93/sipdesk/pkg/middleware/auth"
	redispkg "github.com/abdhfz93/sipdesk/pkg/redis"
	"github.com/abdhfz93/sipdesk/server/portal/internal/config"
	"github.com/abdhfz93/sipdesk/server/portal/internal/database"
	"github.com/abdhfz93/sipdesk/server/portal/internal/routers"
	"github.com/abdhfz93/sipdesk/server/portal/internal/service"
)

// @title           SIPDesk API
// @version         1.0
// @description     Back-office portal API for SIP server maintenance operations.

// @host      localhost:8081
// @BasePath  /fe-v1

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.InitDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	// The portal degrades to uncached lookups when redis is unreachable.
	cache, err := redispkg.NewHandler(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis unavailable, lookup caching disabled", zap.Error(err))
		cache = nil
	}

	blobs, err := blobstore.NewS3Store(context.Background(), cfg.S3Bucket, cfg.S3PublicBaseURL)
	if err != nil {
		logger.Fatal("failed to initialize blob store", zap.Error(err))
	}

	keys := redispkg.NewKeyBuilder(redispkg.GlobalPrefix, "")
	lookupService := service.NewLookupService(db, cache, keys, logger)
	maintenanceService := service.NewMaintenanceService(db, blobs, logger)
	masterlistService := service.NewMasterlistService(db, lookupService, logger)
	incidentService := service.NewIncidentService(db, logger, cfg.GeminiAPIKey, cfg.GeminiModel)

	r := gin.Default()
	configureCORS(r, cfg.CORSOrigin)

	api := r.Group("/fe-v1")
	api.Use(auth.Middleware(cfg.AuthJWTSecret))

	routers.NewMaintenanceHandler(maintenanceService).RegisterRoutes(api)
	routers.NewMasterlistHandler(masterlistService).RegisterRoutes(api)
	routers.NewIncidentHandler(incidentService).RegisterRoutes(api)
	routers.NewLookupHandler(lookupService).RegisterRoutes(api)

	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}

func configureCORS(r *gin.Engine, origin string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
