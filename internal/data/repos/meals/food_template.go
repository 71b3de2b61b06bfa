package meals

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type FoodTemplateRepo interface {
	Create(dbc dbctx.Context, templates []*types.FoodTemplate) ([]*types.FoodTemplate, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.FoodTemplate, error)
	GetByNames(dbc dbctx.Context, names []string) ([]*types.FoodTemplate, error)
	List(dbc dbctx.Context) ([]*types.FoodTemplate, error)
	ExistsByName(dbc dbctx.Context, name string) (bool, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type foodTemplateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFoodTemplateRepo(db *gorm.DB, baseLog *logger.Logger) FoodTemplateRepo {
	return &foodTemplateRepo{db: db, log: baseLog.With("repo", "FoodTemplateRepo")}
}

func (r *foodTemplateRepo) Create(dbc dbctx.Context, templates []*types.FoodTemplate) ([]*types.FoodTemplate, error) {
	if len(templates) == 0 {
		return []*types.FoodTemplate{}, nil
	}
	if err := dbc.Conn(r.db).Create(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *foodTemplateRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.FoodTemplate, error) {
	var out []*types.FoodTemplate
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *foodTemplateRepo) GetByNames(dbc dbctx.Context, names []string) ([]*types.FoodTemplate, error) {
	var out []*types.FoodTemplate
	if len(names) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).Where("name IN ?", names).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every template ordered by name.
func (r *foodTemplateRepo) List(dbc dbctx.Context) ([]*types.FoodTemplate, error) {
	var out []*types.FoodTemplate
	if err := dbc.Conn(r.db).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *foodTemplateRepo) ExistsByName(dbc dbctx.Context, name string) (bool, error) {
	var count int64
	if err := dbc.Conn(r.db).
		Model(&types.FoodTemplate{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByID hard-deletes the template. Selections that referenced it are
// left in place and become dangling.
func (r *foodTemplateRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	res := dbc.Conn(r.db).Where("id = ?", id).Delete(&types.FoodTemplate{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
