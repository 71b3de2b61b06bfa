package meals

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type SelectionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Selection) ([]*types.Selection, error)
	DeleteByStudentDay(dbc dbctx.Context, studentID uuid.UUID, day string) (int64, error)
	ListByStudentDay(dbc dbctx.Context, studentID uuid.UUID, day string) ([]*types.Selection, error)
	ListDangling(dbc dbctx.Context) ([]*types.Selection, error)
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error)

	CountInRange(dbc dbctx.Context, r DayRange) (int64, error)
	CountStudentsInRange(dbc dbctx.Context, r DayRange) (int64, error)
	CountBySlot(dbc dbctx.Context, r DayRange) ([]SlotCount, error)
	TopTemplates(dbc dbctx.Context, r DayRange, limit int) ([]TemplateCount, error)
}

// DayRange bounds a query by day, inclusive. An empty bound is open.
type DayRange struct {
	From string
	To   string
}

type SlotCount struct {
	MealSlot string `json:"meal_slot"`
	Count    int64  `json:"count"`
}

type TemplateCount struct {
	TemplateID uuid.UUID `json:"template_id"`
	Name       string    `json:"name"`
	Count      int64     `json:"count"`
}

type selectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSelectionRepo(db *gorm.DB, baseLog *logger.Logger) SelectionRepo {
	return &selectionRepo{db: db, log: baseLog.With("repo", "SelectionRepo")}
}

func (r *selectionRepo) Create(dbc dbctx.Context, rows []*types.Selection) ([]*types.Selection, error) {
	if len(rows) == 0 {
		return []*types.Selection{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *selectionRepo) DeleteByStudentDay(dbc dbctx.Context, studentID uuid.UUID, day string) (int64, error) {
	if studentID == uuid.Nil || day == "" {
		return 0, nil
	}
	res := dbc.Conn(r.db).
		Where("student_id = ? AND day = ?", studentID, day).
		Delete(&types.Selection{})
	return res.RowsAffected, res.Error
}

// ListByStudentDay returns the set in submission order within each slot.
func (r *selectionRepo) ListByStudentDay(dbc dbctx.Context, studentID uuid.UUID, day string) ([]*types.Selection, error) {
	var out []*types.Selection
	if studentID == uuid.Nil || day == "" {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("student_id = ? AND day = ?", studentID, day).
		Order("meal_slot ASC").
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListDangling returns selections whose template no longer exists.
func (r *selectionRepo) ListDangling(dbc dbctx.Context) ([]*types.Selection, error) {
	var out []*types.Selection
	if err := dbc.Conn(r.db).
		Model(&types.Selection{}).
		Select("selection.*").
		Joins("LEFT JOIN food_template ON food_template.id = selection.template_id").
		Where("food_template.id IS NULL").
		Order("selection.day ASC").
		Order("selection.created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *selectionRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := dbc.Conn(r.db).Where("id IN ?", ids).Delete(&types.Selection{})
	return res.RowsAffected, res.Error
}

func (r *selectionRepo) inRange(q *gorm.DB, rg DayRange) *gorm.DB {
	if rg.From != "" {
		q = q.Where("selection.day >= ?", rg.From)
	}
	if rg.To != "" {
		q = q.Where("selection.day <= ?", rg.To)
	}
	return q
}

func (r *selectionRepo) CountInRange(dbc dbctx.Context, rg DayRange) (int64, error) {
	var n int64
	q := r.inRange(dbc.Conn(r.db).Model(&types.Selection{}), rg)
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *selectionRepo) CountStudentsInRange(dbc dbctx.Context, rg DayRange) (int64, error) {
	var n int64
	q := r.inRange(dbc.Conn(r.db).Model(&types.Selection{}), rg)
	if err := q.Distinct("student_id").Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *selectionRepo) CountBySlot(dbc dbctx.Context, rg DayRange) ([]SlotCount, error) {
	var out []SlotCount
	q := r.inRange(dbc.Conn(r.db).Model(&types.Selection{}), rg)
	if err := q.
		Select("meal_slot, COUNT(*) AS count").
		Group("meal_slot").
		Order("meal_slot ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// TopTemplates counts selections per live template, most selected first,
// ties broken by name.
func (r *selectionRepo) TopTemplates(dbc dbctx.Context, rg DayRange, limit int) ([]TemplateCount, error) {
	var out []TemplateCount
	if limit <= 0 {
		limit = 10
	}
	q := r.inRange(dbc.Conn(r.db).Model(&types.Selection{}), rg)
	if err := q.
		Select("food_template.id AS template_id, food_template.name AS name, COUNT(*) AS count").
		Joins("JOIN food_template ON food_template.id = selection.template_id").
		Group("food_template.id, food_template.name").
		Order("count DESC").
		Order("name ASC").
		Limit(limit).
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
