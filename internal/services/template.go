package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/data/db"
	"github.com/yungbote/schoolmeal-backend/internal/data/repos"
	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/nutrition"
	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

// TemplateInput carries raw nutrient values keyed by nutrient name. Values
// are parsed here so that malformed numbers surface as validation errors.
type TemplateInput struct {
	Name   string
	Values map[string]string
}

type TemplateService interface {
	CreateTemplate(ctx context.Context, in TemplateInput) (*types.FoodTemplate, error)
	ListTemplates(ctx context.Context) ([]*types.FoodTemplate, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
}

type templateService struct {
	db           *gorm.DB
	log          *logger.Logger
	templateRepo repos.FoodTemplateRepo
}

func NewTemplateService(db *gorm.DB, log *logger.Logger, templateRepo repos.FoodTemplateRepo) TemplateService {
	return &templateService{
		db:           db,
		log:          log.With("service", "TemplateService"),
		templateRepo: templateRepo,
	}
}

func (s *templateService) CreateTemplate(ctx context.Context, in TemplateInput) (*types.FoodTemplate, error) {
	actor, err := authz.RequireCtx(ctx, authz.RoleOrganisation)
	if err != nil {
		return nil, err
	}
	tpl, err := ParseTemplate(in)
	if err != nil {
		return nil, err
	}
	tpl.CreatedBy = actor.ID

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := s.templateRepo.ExistsByName(dbc, tpl.Name)
	if err != nil {
		return nil, fmt.Errorf("check template name: %w", err)
	}
	if exists {
		return nil, apierr.Duplicate(tpl.Name)
	}
	if _, err := s.templateRepo.Create(dbc, []*types.FoodTemplate{tpl}); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Duplicate(tpl.Name)
		}
		return nil, fmt.Errorf("create template: %w", err)
	}
	s.log.Info("template created", "template_id", tpl.ID, "name", tpl.Name, "actor_id", actor.ID)
	return tpl, nil
}

// ParseTemplate validates the name and all seven nutrient values.
func ParseTemplate(in TemplateInput) (*types.FoodTemplate, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.Validation("template name is required")
	}
	tpl := &types.FoodTemplate{Name: name}
	for _, n := range nutrition.Tracked {
		raw, ok := in.Values[string(n)]
		if !ok {
			return nil, apierr.Validation("missing value for %s", n)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, apierr.Validation("%s must be a number, got %q", n, raw)
		}
		if v < 0 {
			return nil, apierr.Validation("%s must not be negative", n)
		}
		setAmount(tpl, n, v)
	}
	return tpl, nil
}

func setAmount(t *types.FoodTemplate, n nutrition.Nutrient, v float64) {
	switch n {
	case nutrition.Calories:
		t.Calories = v
	case nutrition.Protein:
		t.Protein = v
	case nutrition.Carbs:
		t.Carbs = v
	case nutrition.Fats:
		t.Fats = v
	case nutrition.Sugar:
		t.Sugar = v
	case nutrition.Fibre:
		t.Fibre = v
	case nutrition.Sodium:
		t.Sodium = v
	}
}

func (s *templateService) ListTemplates(ctx context.Context) ([]*types.FoodTemplate, error) {
	if _, err := authz.ActorFrom(ctx); err != nil {
		return nil, err
	}
	out, err := s.templateRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}

// DeleteTemplate hard-deletes a template. Existing selections keep their
// template id and show up in the dangling audit.
func (s *templateService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	actor, err := authz.RequireCtx(ctx, authz.RoleOrganisation)
	if err != nil {
		return err
	}
	deleted, err := s.templateRepo.DeleteByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if !deleted {
		return apierr.NotFound("template")
	}
	s.log.Info("template deleted", "template_id", id, "actor_id", actor.ID)
	return nil
}
