package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stockline-api/internal/cache"
	"stockline-api/internal/config"
	"stockline-api/internal/handler"
	"stockline-api/internal/middleware"
	"stockline-api/internal/repository"
	"stockline-api/internal/router"
	"stockline-api/internal/service"
	"stockline-api/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Stockline API...")

	// Load configuration. A missing DATABASE_URL is fatal here.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize item repository based on the connection string scheme
	driver, dsn, err := cfg.Database.Driver()
	if err != nil {
		log.Fatalf("Invalid DATABASE_URL: %v", err)
	}

	var itemRepo repository.ItemRepository
	switch driver {
	case "postgres":
		pgRepo, err := repository.NewPostgresItemRepository(dsn)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		itemRepo = pgRepo
		log.Println("PostgreSQL item repository initialized")
	case "mysql":
		myRepo, err := repository.NewMySQLItemRepository(dsn)
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		itemRepo = myRepo
		log.Println("MySQL item repository initialized")
	default: // sqlite
		sqliteRepo, err := repository.NewSQLiteItemRepository(dsn)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		itemRepo = sqliteRepo
		log.Println("SQLite item repository initialized")
	}
	defer itemRepo.Close()

	// Initialize read cache
	var itemCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
			itemCache = cache.NewMemoryCache()
		} else {
			defer redisCache.Close()
			itemCache = redisCache
			log.Println("Redis cache initialized")
		}
	case "none":
		log.Println("Read cache disabled")
	default: // memory
		itemCache = cache.NewMemoryCache()
		log.Println("Memory cache initialized")
	}

	// Initialize file storage
	var fileStore storage.FileStore
	if cfg.Upload.Backend == "s3" {
		minioStore, err := storage.NewMinioFileStore(storage.MinioConfig{
			Endpoint:  cfg.Upload.S3Endpoint,
			AccessKey: cfg.Upload.S3AccessKey,
			SecretKey: cfg.Upload.S3SecretKey,
			Bucket:    cfg.Upload.S3Bucket,
			UseSSL:    cfg.Upload.S3UseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		fileStore = minioStore
		log.Println("MinIO file store initialized")
	} else {
		fileStore = storage.NewLocalFileStore(cfg.Upload.Dir)
		log.Printf("Local file store initialized: %s", cfg.Upload.Dir)
	}

	// Initialize services
	itemService := service.NewItemService(itemRepo, itemCache, cfg.Cache.TTL)
	uploadService := service.NewUploadService(fileStore)

	// Initialize handlers
	rootHandler := handler.New(itemService, cfg.App.Version)
	itemHandler := handler.NewItemHandler(itemService)
	adminHandler := handler.NewAdminHandler(itemService, driver, cfg.Cache.Type)
	uploadHandler := handler.NewUploadHandler(uploadService)

	// Admin gate middleware with the configured shared secret
	adminAuth := middleware.NewAdminAuth(cfg.Admin.Password)

	// Create router
	r := router.New(router.Config{
		Handler:       rootHandler,
		ItemHandler:   itemHandler,
		AdminHandler:  adminHandler,
		UploadHandler: uploadHandler,
		AdminAuth:     adminAuth,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
