package app

import (
	"time"

	"github.com/yungbote/schoolmeal-backend/internal/data/db"
	"github.com/yungbote/schoolmeal-backend/internal/observability"
	"github.com/yungbote/schoolmeal-backend/internal/platform/envutil"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

const defaultJWTSecret = "defaultsecret"

type Config struct {
	Port        string
	Environment string

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	DB db.Config

	RedisAddr           string
	LatestSubmissionTTL time.Duration

	NutrientCatalogPath string
	LegacyMenuCSV       string
	LegacyNutritionJSON string

	CORSOrigins []string
	Otel        observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		Environment: envutil.String("APP_ENV", "development"),

		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", defaultJWTSecret),
		AccessTokenTTL:  envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: envutil.Seconds("REFRESH_TOKEN_TTL", 24*time.Hour),

		DB: db.Config{
			Driver:     envutil.String("DB_DRIVER", db.DriverPostgres),
			SQLitePath: envutil.String("SQLITE_PATH", db.DefaultSQLitePath),
			Postgres: db.PostgresConfig{
				Host:     envutil.String("POSTGRES_HOST", "localhost"),
				Port:     envutil.String("POSTGRES_PORT", "5432"),
				User:     envutil.String("POSTGRES_USER", "postgres"),
				Password: envutil.String("POSTGRES_PASSWORD", ""),
				Name:     envutil.String("POSTGRES_NAME", "schoolmeal"),
			},
		},

		RedisAddr:           envutil.String("REDIS_ADDR", ""),
		LatestSubmissionTTL: envutil.Seconds("LATEST_SUBMISSION_TTL", 7*24*time.Hour),

		NutrientCatalogPath: envutil.String("NUTRIENT_CATALOG_PATH", ""),
		LegacyMenuCSV:       envutil.String("LEGACY_MENU_CSV", ""),
		LegacyNutritionJSON: envutil.String("LEGACY_NUTRITION_JSON", ""),

		CORSOrigins: envutil.List("CORS_ORIGINS"),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "schoolmeal"),
			Version:     envutil.String("APP_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
		},
	}
	cfg.Otel.Environment = cfg.Environment

	if cfg.JWTSecretKey == defaultJWTSecret {
		log.Warn("JWT_SECRET_KEY not set; using the development default")
	}
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set; latest-submission store disabled")
	}
	return cfg
}

// LegacyEnabled reports whether both legacy lookup files are configured.
func (c Config) LegacyEnabled() bool {
	return c.LegacyMenuCSV != "" && c.LegacyNutritionJSON != ""
}
