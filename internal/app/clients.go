package app

import (
	"fmt"

	"github.com/yungbote/schoolmeal-backend/internal/legacy"
	"github.com/yungbote/schoolmeal-backend/internal/nutrition"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
	"github.com/yungbote/schoolmeal-backend/internal/platform/redis"
)

type Clients struct {
	// SubmissionStore is nil when REDIS_ADDR is unset or unreachable.
	SubmissionStore redis.SubmissionStore
	Catalog         nutrition.Catalog
	// Legacy is nil unless both legacy files are configured.
	Legacy *legacy.Service
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	out := Clients{Catalog: nutrition.DefaultCatalog()}

	if cfg.NutrientCatalogPath != "" {
		cat, err := nutrition.LoadCatalog(cfg.NutrientCatalogPath)
		if err != nil {
			return Clients{}, fmt.Errorf("load nutrient catalog: %w", err)
		}
		out.Catalog = cat
	}

	if cfg.RedisAddr != "" {
		store, err := redis.NewSubmissionStore(log, redis.SubmissionStoreConfig{
			Addr: cfg.RedisAddr,
			TTL:  cfg.LatestSubmissionTTL,
		})
		if err != nil {
			log.Warn("latest-submission store unavailable (continuing without it)", "error", err)
		} else {
			out.SubmissionStore = store
		}
	}

	if cfg.LegacyEnabled() {
		svc, err := legacy.NewService(log, cfg.LegacyMenuCSV, cfg.LegacyNutritionJSON)
		if err != nil {
			return Clients{}, fmt.Errorf("load legacy lookup: %w", err)
		}
		out.Legacy = svc
	}
	return out, nil
}

func (c Clients) Close() {
	if c.SubmissionStore != nil {
		_ = c.SubmissionStore.Close()
	}
}
