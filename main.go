package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sparked/config"
	"sparked/database"
	"sparked/handlers"
	"sparked/logging"
	"sparked/matchmaking"
	"sparked/ratelimit"
	"sparked/routes"
	"sparked/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatal("logger: ", err)
	}
	defer logger.Sync()

	logger.Info("starting sparked backend", zap.String("env", cfg.Env))

	// Connect to MongoDB with retry.
	var db *database.DB
	for attempt := 1; attempt <= 3; attempt++ {
		db, err = database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
		if err == nil {
			break
		}
		logger.Warn("mongodb connection failed", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Fatal("mongodb unavailable", zap.Error(err))
	}
	logger.Info("mongodb connected", zap.String("database", cfg.MongoDatabase))

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		cancelIndex()
		logger.Fatal("index bootstrap failed", zap.Error(err))
	}
	cancelIndex()

	avatars, err := storage.New(cfg.CloudinaryURL, cfg.UploadDir)
	if err != nil {
		logger.Fatal("avatar storage init failed", zap.Error(err))
	}

	// Redis-backed rate limiting when an address is configured, a
	// single-process window otherwise.
	var rateStore ratelimit.Store
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		rateStore = ratelimit.NewRedisStore(redisClient)
		logger.Info("rate limiting via redis", zap.String("addr", cfg.RedisAddr))
	} else {
		rateStore = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.NewLimiter(rateStore, cfg.RateLimit, cfg.RateWindow)

	match := matchmaking.NewService(db, db, db)
	h := handlers.New(db, match, avatars, logger, cfg)

	if cfg.Env == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(h, limiter)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if err := db.Close(context.Background()); err != nil {
		logger.Error("mongodb disconnect failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
