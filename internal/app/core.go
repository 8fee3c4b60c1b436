package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/coastal_hazard_system/internal/classifier"
	"github.com/shenikar/coastal_hazard_system/internal/config"
	"github.com/shenikar/coastal_hazard_system/internal/geocode"
	"github.com/shenikar/coastal_hazard_system/internal/metrics"
	"github.com/shenikar/coastal_hazard_system/internal/repository"
	"github.com/shenikar/coastal_hazard_system/internal/service"
	"github.com/shenikar/coastal_hazard_system/internal/webhook"
	"github.com/shenikar/coastal_hazard_system/pkg/postgres"
	redisclient "github.com/shenikar/coastal_hazard_system/pkg/redis"
	"github.com/sirupsen/logrus"
)

// Core - зависимости, общие для HTTP сервера и утилиты обслуживания
type Core struct {
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Metrics     *metrics.Metrics
	PostService service.PostService
}

// NewCore подключается к PostgreSQL и Redis и собирает сервис записей
func NewCore(ctx context.Context, cfg *config.Config, log *logrus.Logger, m *metrics.Metrics) (*Core, error) {
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Info("Successfully connected to PostgreSQL")

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		dbpool.Close()
		return nil, err
	}
	log.Info("Successfully connected to Redis")

	cls, err := loadClassifier(cfg, log)
	if err != nil {
		dbpool.Close()
		_ = redisClient.Close()
		return nil, err
	}

	repo := repository.NewPostRepository(dbpool, redisClient, cfg.HotspotCacheTTL)
	postService := service.NewPostService(
		repo,
		log,
		cls,
		newGeocoder(cfg, redisClient, log),
		webhook.NewRedisAlertPublisher(redisClient),
		clockwork.NewRealClock(),
		m,
	)

	return &Core{
		DB:          dbpool,
		Redis:       redisClient,
		Metrics:     m,
		PostService: postService,
	}, nil
}

func (c *Core) Close() {
	_ = c.Redis.Close()
	c.DB.Close()
}

func loadClassifier(cfg *config.Config, log *logrus.Logger) (*classifier.Classifier, error) {
	if cfg.ClassifierRulesPath == "" {
		return classifier.New(), nil
	}
	cls, err := classifier.LoadFile(cfg.ClassifierRulesPath)
	if err != nil {
		return nil, err
	}
	log.WithField("path", cfg.ClassifierRulesPath).Info("Classifier rules loaded")
	return cls, nil
}

func newGeocoder(cfg *config.Config, redisClient *redis.Client, log *logrus.Logger) service.Geocoder {
	if cfg.GoogleMapsAPIKey == "" {
		log.Info("GOOGLE_MAPS_API_KEY not set, geocoding disabled")
		return geocode.Disabled{}
	}
	return geocode.NewCached(
		geocode.NewGoogleClient(cfg.GoogleMapsAPIKey, cfg.GeocodeTimeout),
		geocode.NewRedisCache(redisClient, cfg.GeocodeCacheTTL),
		log,
	)
}
