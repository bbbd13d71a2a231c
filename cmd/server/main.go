// Command server runs the Mobilis Bourse marketplace API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mobilis/backend/config"
	"mobilis/backend/internal/api/handler"
	"mobilis/backend/internal/api/router"
	"mobilis/backend/internal/notify"
	"mobilis/backend/internal/queue"
	"mobilis/backend/internal/repository"
	"mobilis/backend/internal/service"
	"mobilis/backend/pkg/database"
	"mobilis/backend/pkg/jwt"
	"mobilis/backend/pkg/logger"
	"mobilis/backend/pkg/mailer"
	"mobilis/backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2. logger
	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zapLogger.Sync()

	// 3. database
	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("connect database", zap.Error(err))
	}

	// 4. migrations
	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("unwrap sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, zapLogger); err != nil {
		zapLogger.Fatal("run migrations", zap.Error(err))
	}

	// 5. redis (optional: without it tokens are not blacklisted on logout
	//    and the notification queue falls back to process memory)
	redisClient, err := redis.NewClient(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Warn("redis unavailable, running degraded", zap.Error(err))
		redisClient = nil
	}

	// 6. token manager and mailer
	jwtManager := jwt.NewManager(&cfg.Auth)
	mail := mailer.New(&cfg.Mail, zapLogger)

	// 7. notification queue
	var jobQueue queue.Queue
	if redisClient != nil {
		jobQueue = queue.NewRedisQueue(redisClient, cfg.Queue.Name)
	} else {
		jobQueue = queue.NewMemoryQueue(1024)
		zapLogger.Warn("using in-memory notification queue, jobs will not survive a restart")
	}

	// 8. repositories and services
	repo := repository.New(db)
	services := service.New(cfg, repo, jwtManager, redisClient, jobQueue, zapLogger)

	// 9. notification workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	notifier := notify.NewNotifier(repo, mail, zapLogger, cfg.Server.BaseURL)
	worker := notify.NewWorker(jobQueue, notifier, zapLogger,
		cfg.Queue.Workers, cfg.Queue.MaxAttempts, cfg.Queue.RetryBackoff)
	worker.Start(workerCtx)

	// 10. HTTP server
	handlers := handler.New(services, zapLogger)
	engine := router.Setup(cfg, handlers, jwtManager, redisClient, zapLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		zapLogger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 11. graceful shutdown: stop accepting requests, then drain the workers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown", zap.Error(err))
	}

	stopWorkers()
	worker.Wait()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zapLogger.Error("close redis", zap.Error(err))
		}
	}
	zapLogger.Info("bye")
}
