package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/domain/meals"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
	"github.com/yungbote/schoolmeal-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Template  services.TemplateService
	Selection services.SelectionService
	Analysis  services.AnalysisService
	Menu      services.MenuService
	Stats     services.StatsService
	Audit     services.AuditService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")
	// A nil interface keeps the selection service from calling a missing store.
	var store services.SubmissionStore
	if clients.SubmissionStore != nil {
		store = clients.SubmissionStore
	}
	return Services{
		Auth:      services.NewAuthService(db, log, repos.User, repos.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:      services.NewUserService(db, log, repos.User),
		Template:  services.NewTemplateService(db, log, repos.FoodTemplate),
		Selection: services.NewSelectionService(db, log, repos.FoodTemplate, repos.Selection, store),
		Analysis:  services.NewAnalysisService(db, log, clients.Catalog, repos.FoodTemplate, repos.Selection),
		Menu:      services.NewMenuService(db, log, meals.DefaultSchedule, repos.FoodTemplate, repos.MenuItem),
		Stats:     services.NewStatsService(db, log, repos.Selection),
		Audit:     services.NewAuditService(db, log, repos.Selection, repos.AuditPurge),
	}
}
