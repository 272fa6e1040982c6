package bootstrap

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds everything the seeding run needs from the environment.
type Config struct {
	DatabaseURL    string
	OllamaAPIURL   string
	JaegerEndpoint string
	RandomSeed     int64
	UserCount      int
	ProviderCount  int
	ProductCount   int
}

// Init loads .env if present, configures zerolog and returns the runtime
// configuration. Missing optional values fall back to defaults.
func Init(serviceName string) Config {
	if err := godotenv.Load(); err != nil {
		zlog.Debug().Err(err).Msg("no .env file loaded")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zlog.Logger = zlog.With().Str("service", serviceName).Logger()

	return Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		OllamaAPIURL:   getEnv("OLLAMA_API_URL", "http://localhost:11434/v1/chat/completions"),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		RandomSeed:     getEnvInt64("RANDOM_SEED", time.Now().UnixNano()),
		UserCount:      getEnvInt("SEED_USER_COUNT", 50),
		ProviderCount:  getEnvInt("SEED_PROVIDER_COUNT", 10),
		ProductCount:   getEnvInt("SEED_PRODUCT_COUNT", 20),
	}
}

// OpenDB connects to MySQL using the configured DSN.
func OpenDB(cfg Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	db, err := gorm.Open(mysql.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "access connection pool")
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		zlog.Warn().Str("key", key).Str("value", value).Msg("invalid integer in environment, using default")
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		zlog.Warn().Str("key", key).Str("value", value).Msg("invalid integer in environment, using default")
	}
	return fallback
}
