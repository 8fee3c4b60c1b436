package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/coastal_hazard_system/internal/app"
	"github.com/shenikar/coastal_hazard_system/internal/config"
	"github.com/shenikar/coastal_hazard_system/internal/fetcher"
	v1 "github.com/shenikar/coastal_hazard_system/internal/handler/http/v1"
	"github.com/shenikar/coastal_hazard_system/internal/metrics"
	"github.com/shenikar/coastal_hazard_system/internal/refresh"
	"github.com/shenikar/coastal_hazard_system/internal/webhook"
	"github.com/shenikar/coastal_hazard_system/pkg/logger"
	"github.com/shenikar/coastal_hazard_system/pkg/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/coastal_hazard_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Coastal Hazard System API
// @version 1.0
// @description Ingests social posts and citizen reports, classifies coastal hazards and aggregates hotspots.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := postgres.RunMigrations(cfg.DatabaseURL, postgres.DefaultMigrationsPath, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	m := metrics.NewMetrics()

	core, err := app.NewCore(ctx, cfg, log, m)
	if err != nil {
		log.Fatalf("Failed to initialize core: %v", err)
	}
	defer core.Close()

	// Инициализация и запуск воркера оповещений
	alertWorker := webhook.NewAlertWorker(core.Redis, log, cfg)
	alertWorker.Start(ctx)

	// Фетчеры соцсетей и очередь обновлений
	aggregator := fetcher.NewAggregator(fetcher.NewFromConfig(cfg.Social, log), log, m, cfg.Social.FetchTimeout)
	runner := refresh.NewRunner(aggregator, core.PostService, log, m, clockwork.NewRealClock(), cfg.RefreshWorkers, cfg.RefreshQueueSize)
	runner.Start(ctx)

	// Инициализация хэндлеров
	handler := v1.NewHandler(core.PostService, runner, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Останавливаем воркеры после HTTP сервера
	cancel()

	log.Info("Server gracefully stopped")
}
