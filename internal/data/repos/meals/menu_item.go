package meals

import (
	"gorm.io/gorm"

	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type MenuItemRepo interface {
	Create(dbc dbctx.Context, items []*types.MenuItem) ([]*types.MenuItem, error)
	DeleteByDaySlot(dbc dbctx.Context, day, slot string) (int64, error)
	ListByDay(dbc dbctx.Context, day string) ([]*types.MenuItem, error)
	ListByDaySlot(dbc dbctx.Context, day, slot string) ([]*types.MenuItem, error)
}

type menuItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMenuItemRepo(db *gorm.DB, baseLog *logger.Logger) MenuItemRepo {
	return &menuItemRepo{db: db, log: baseLog.With("repo", "MenuItemRepo")}
}

func (r *menuItemRepo) Create(dbc dbctx.Context, items []*types.MenuItem) ([]*types.MenuItem, error) {
	if len(items) == 0 {
		return []*types.MenuItem{}, nil
	}
	if err := dbc.Conn(r.db).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepo) DeleteByDaySlot(dbc dbctx.Context, day, slot string) (int64, error) {
	res := dbc.Conn(r.db).
		Where("day = ? AND meal_slot = ?", day, slot).
		Delete(&types.MenuItem{})
	return res.RowsAffected, res.Error
}

func (r *menuItemRepo) ListByDay(dbc dbctx.Context, day string) ([]*types.MenuItem, error) {
	var out []*types.MenuItem
	if err := dbc.Conn(r.db).
		Where("day = ?", day).
		Order("meal_slot ASC").
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *menuItemRepo) ListByDaySlot(dbc dbctx.Context, day, slot string) ([]*types.MenuItem, error) {
	var out []*types.MenuItem
	if err := dbc.Conn(r.db).
		Where("day = ? AND meal_slot = ?", day, slot).
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
