package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/mobistore-api/cache"
	"github.com/Kariqs/mobistore-api/controllers"
	"github.com/Kariqs/mobistore-api/initializers"
	"github.com/Kariqs/mobistore-api/middlewares"
	"github.com/Kariqs/mobistore-api/routes"
	"github.com/Kariqs/mobistore-api/services"
	"github.com/Kariqs/mobistore-api/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	initializers.LoadEnv()

	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := initializers.InitLogger(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := initializers.ConnectToDB(cfg.DBDriver, cfg.DSN(), cfg.DBMaxOpenConns)
	if err != nil {
		zap.S().Fatalw("database connection failed", "error", err)
	}
	defer initializers.CloseDB(db)

	if err := initializers.SyncDatabase(db); err != nil {
		zap.S().Fatalw("database migration failed", "error", err)
	}

	var filterCache cache.FilterOptionsCache = cache.NopCache{}
	redisClient, err := initializers.ConnectToRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	switch {
	case err != nil:
		zap.S().Warnw("redis unavailable, filter options are not cached", "addr", cfg.RedisAddr, "error", err)
	case redisClient != nil:
		defer redisClient.Close()
		filterCache = cache.NewRedisCache(redisClient, cfg.FilterCacheTTL)
	}

	var blobs storage.BlobStore = storage.Disabled{}
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3KeyPrefix)
		if err != nil {
			zap.S().Warnw("s3 unavailable, image uploads disabled", "bucket", cfg.S3Bucket, "error", err)
		} else {
			blobs = s3Store
		}
	}

	filters := services.NewFilterService(db, filterCache)
	accounts := services.NewAccountService(db, filters, cfg.JWTSecret, cfg.JWTTTL)
	catalog := services.NewCatalogService(db, blobs, filters)

	gin.SetMode(cfg.GinMode)
	server := gin.Default()
	server.MaxMultipartMemory = cfg.MaxUploadMB << 20
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "user-id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(server, &routes.Deps{
		DB:          db,
		RequireAuth: middlewares.RequireAuth(accounts, cfg.JWTSecret, cfg.TrustedHeaderAuth),
		Auth:        controllers.NewAuthController(accounts),
		Profile:     controllers.NewProfileController(accounts),
		Products:    controllers.NewProductController(catalog, filters, cfg.MaxUploadMB<<20),
		Cart:        controllers.NewCartController(services.NewCartService(db)),
		Wishlist:    controllers.NewWishlistController(services.NewWishlistService(db)),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.S().Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Errorw("server forced to shut down", "error", err)
	}
}
