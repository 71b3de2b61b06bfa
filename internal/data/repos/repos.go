package repos

import (
	"github.com/yungbote/schoolmeal-backend/internal/data/repos/auth"
	"github.com/yungbote/schoolmeal-backend/internal/data/repos/meals"
	"github.com/yungbote/schoolmeal-backend/internal/data/repos/user"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type FoodTemplateRepo = meals.FoodTemplateRepo
type SelectionRepo = meals.SelectionRepo
type MenuItemRepo = meals.MenuItemRepo
type AuditPurgeRepo = meals.AuditPurgeRepo

type DayRange = meals.DayRange
type SlotCount = meals.SlotCount
type TemplateCount = meals.TemplateCount

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewFoodTemplateRepo(db *gorm.DB, baseLog *logger.Logger) FoodTemplateRepo {
	return meals.NewFoodTemplateRepo(db, baseLog)
}

func NewSelectionRepo(db *gorm.DB, baseLog *logger.Logger) SelectionRepo {
	return meals.NewSelectionRepo(db, baseLog)
}

func NewMenuItemRepo(db *gorm.DB, baseLog *logger.Logger) MenuItemRepo {
	return meals.NewMenuItemRepo(db, baseLog)
}

func NewAuditPurgeRepo(db *gorm.DB, baseLog *logger.Logger) AuditPurgeRepo {
	return meals.NewAuditPurgeRepo(db, baseLog)
}
