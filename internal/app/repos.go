package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/data/repos"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	UserToken    repos.UserTokenRepo
	FoodTemplate repos.FoodTemplateRepo
	Selection    repos.SelectionRepo
	MenuItem     repos.MenuItemRepo
	AuditPurge   repos.AuditPurgeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		UserToken:    repos.NewUserTokenRepo(db, log),
		FoodTemplate: repos.NewFoodTemplateRepo(db, log),
		Selection:    repos.NewSelectionRepo(db, log),
		MenuItem:     repos.NewMenuItemRepo(db, log),
		AuditPurge:   repos.NewAuditPurgeRepo(db, log),
	}
}
