package app

import (
	"testing"
	"time"

	"github.com/yungbote/schoolmeal-backend/internal/data/db"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "REDIS_ADDR", "LEGACY_MENU_CSV", "LEGACY_NUTRITION_JSON", "ACCESS_TOKEN_TTL", "OTEL_ENABLED"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(logger.Nop())
	if cfg.Port != "8080" || cfg.DB.Driver != db.DriverPostgres || cfg.AccessTokenTTL != time.Hour {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.LegacyEnabled() || cfg.Otel.Enabled {
		t.Fatalf("optional features must be off by default: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/meals.db")
	t.Setenv("ACCESS_TOKEN_TTL", "60")
	t.Setenv("LEGACY_MENU_CSV", "menu.csv")
	t.Setenv("LEGACY_NUTRITION_JSON", "lookup.json")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")
	t.Setenv("CORS_ORIGINS", "https://a.example.org, https://b.example.org")

	cfg := LoadConfig(logger.Nop())
	if cfg.DB.Driver != db.DriverSQLite || cfg.DB.SQLitePath != "/tmp/meals.db" {
		t.Fatalf("db config: %+v", cfg.DB)
	}
	if cfg.AccessTokenTTL != time.Minute {
		t.Fatalf("AccessTokenTTL: %v", cfg.AccessTokenTTL)
	}
	if !cfg.LegacyEnabled() {
		t.Fatalf("legacy should be enabled")
	}
	if cfg.Otel.SampleRatio != 0.5 || len(cfg.CORSOrigins) != 2 {
		t.Fatalf("otel/cors: %+v %q", cfg.Otel, cfg.CORSOrigins)
	}
}
