package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shenikar/coastal_hazard_system/internal/hotspot"
)

// Роли, которые понимает ядро. Выдача токенов вне системы.
const (
	RoleCitizen  = "CITIZEN"
	RoleOfficial = "OFFICIAL"
	RoleAnalyst  = "ANALYST"
	RoleAdmin    = "ADMIN"
)

// APIKey - ключ доступа и привязанный к нему субъект
type APIKey struct {
	Key     string
	Role    string
	Subject string
}

// SocialConfig - учетные данные платформ, передаются в фабрику фетчеров
type SocialConfig struct {
	TwitterBearerToken string
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string
	YouTubeAPIKey      string
	InstagramUserToken string
	FixturesDir        string
	FetchTimeout       time.Duration
}

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []APIKey `env:"API_KEYS"`

	Social SocialConfig

	// Geocoding
	GoogleMapsAPIKey string        `env:"GOOGLE_MAPS_API_KEY"`
	GeocodeTimeout   time.Duration `env:"GEOCODE_TIMEOUT" envDefault:"10s"`
	GeocodeCacheTTL  time.Duration `env:"GEOCODE_CACHE_TTL" envDefault:"24h"`

	// Hotspots
	HotspotCellSize  float64       `env:"HOTSPOT_CELL_SIZE" envDefault:"0.02"`
	HotspotMinWeight int           `env:"HOTSPOT_MIN_WEIGHT" envDefault:"1"`
	HotspotGridMode  string        `env:"HOTSPOT_GRID_MODE" envDefault:"floor"`
	HotspotCacheTTL  time.Duration `env:"HOTSPOT_CACHE_TTL" envDefault:"5m"`

	ClassifierRulesPath string `env:"CLASSIFIER_RULES_PATH"`

	// Refresh jobs
	RefreshWorkers      int    `env:"REFRESH_WORKERS" envDefault:"2"`
	RefreshQueueSize    int    `env:"REFRESH_QUEUE_SIZE" envDefault:"16"`
	RefreshDefaultQuery string `env:"REFRESH_DEFAULT_QUERY" envDefault:"flood,tsunami,cyclone"`
	RefreshDefaultLimit int    `env:"REFRESH_DEFAULT_LIMIT" envDefault:"20"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		Social: SocialConfig{
			TwitterBearerToken: os.Getenv("TWITTER_BEARER_TOKEN"),
			RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "coastal-hazard-system/1.0"),
			YouTubeAPIKey:      os.Getenv("YOUTUBE_API_KEY"),
			InstagramUserToken: os.Getenv("INSTAGRAM_USER_TOKEN"),
			FixturesDir:        os.Getenv("SOCIAL_FIXTURES_DIR"),
			FetchTimeout:       getEnvAsDuration("SOCIAL_FETCH_TIMEOUT", 10*time.Second),
		},
		GoogleMapsAPIKey:    os.Getenv("GOOGLE_MAPS_API_KEY"),
		GeocodeTimeout:      getEnvAsDuration("GEOCODE_TIMEOUT", 10*time.Second),
		GeocodeCacheTTL:     getEnvAsDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
		HotspotCellSize:     getEnvAsFloat("HOTSPOT_CELL_SIZE", 0.02),
		HotspotMinWeight:    getEnvAsInt("HOTSPOT_MIN_WEIGHT", 1),
		HotspotGridMode:     getEnv("HOTSPOT_GRID_MODE", "floor"),
		HotspotCacheTTL:     getEnvAsDuration("HOTSPOT_CACHE_TTL", 5*time.Minute),
		ClassifierRulesPath: os.Getenv("CLASSIFIER_RULES_PATH"),
		RefreshWorkers:      getEnvAsInt("REFRESH_WORKERS", 2),
		RefreshQueueSize:    getEnvAsInt("REFRESH_QUEUE_SIZE", 16),
		RefreshDefaultQuery: getEnv("REFRESH_DEFAULT_QUERY", "flood,tsunami,cyclone"),
		RefreshDefaultLimit: getEnvAsInt("REFRESH_DEFAULT_LIMIT", 20),
	}

	// Загрузка API ключей
	apiKeys, err := ParseAPIKeys(os.Getenv("API_KEYS"))
	if err != nil {
		return nil, err
	}
	cfg.APIKeys = apiKeys

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if !(cfg.HotspotCellSize >= hotspot.MinCellSize && cfg.HotspotCellSize <= hotspot.MaxCellSize) {
		return nil, fmt.Errorf("HOTSPOT_CELL_SIZE must be between %g and %g, got %v",
			hotspot.MinCellSize, hotspot.MaxCellSize, cfg.HotspotCellSize)
	}
	if cfg.HotspotGridMode != "floor" && cfg.HotspotGridMode != "nearest" {
		return nil, fmt.Errorf("HOTSPOT_GRID_MODE must be floor or nearest, got %q", cfg.HotspotGridMode)
	}

	return cfg, nil
}

// ParseAPIKeys разбирает список вида "key:ROLE[:subject],key2:ROLE2".
// Ключ без роли получает роль CITIZEN, без субъекта - субъект "apikey-N".
func ParseAPIKeys(raw string) ([]APIKey, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var keys []APIKey
	for i, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		key := APIKey{
			Key:     strings.TrimSpace(parts[0]),
			Role:    RoleCitizen,
			Subject: fmt.Sprintf("apikey-%d", i+1),
		}
		if len(parts) > 1 {
			key.Role = strings.ToUpper(strings.TrimSpace(parts[1]))
		}
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			key.Subject = strings.TrimSpace(parts[2])
		}
		if key.Key == "" {
			return nil, fmt.Errorf("API_KEYS entry %d has an empty key", i+1)
		}
		if !ValidRole(key.Role) {
			return nil, fmt.Errorf("API_KEYS entry %d has unknown role %q", i+1, key.Role)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func ValidRole(role string) bool {
	switch role {
	case RoleCitizen, RoleOfficial, RoleAnalyst, RoleAdmin:
		return true
	}
	return false
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
