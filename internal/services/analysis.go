package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/data/repos"
	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/domain/meals"
	"github.com/yungbote/schoolmeal-backend/internal/nutrition"
	"github.com/yungbote/schoolmeal-backend/internal/observability"
	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type AnalysisService interface {
	// Analyze returns nil, nil when the student has no selections that day.
	Analyze(ctx context.Context, studentID uuid.UUID, day string) (*nutrition.DailyAnalysis, error)
}

type analysisService struct {
	db            *gorm.DB
	log           *logger.Logger
	catalog       nutrition.Catalog
	templateRepo  repos.FoodTemplateRepo
	selectionRepo repos.SelectionRepo
}

func NewAnalysisService(
	db *gorm.DB,
	log *logger.Logger,
	catalog nutrition.Catalog,
	templateRepo repos.FoodTemplateRepo,
	selectionRepo repos.SelectionRepo,
) AnalysisService {
	return &analysisService{
		db:            db,
		log:           log.With("service", "AnalysisService"),
		catalog:       catalog,
		templateRepo:  templateRepo,
		selectionRepo: selectionRepo,
	}
}

func (s *analysisService) authorize(ctx context.Context, studentID uuid.UUID) error {
	actor, err := authz.ActorFrom(ctx)
	if err != nil {
		return err
	}
	if actor.Role == authz.RoleOrganisation {
		return nil
	}
	if err := authz.Require(actor, authz.Students...); err != nil {
		return err
	}
	if actor.ID != studentID {
		return apierr.Forbidden("students may only read their own analysis")
	}
	return nil
}

func (s *analysisService) Analyze(ctx context.Context, studentID uuid.UUID, day string) (*nutrition.DailyAnalysis, error) {
	ctx, span := observability.Tracer("services").Start(ctx, "AnalysisService.Analyze")
	defer span.End()
	span.SetAttributes(attribute.String("student_id", studentID.String()), attribute.String("day", day))

	if err := s.authorize(ctx, studentID); err != nil {
		return nil, err
	}
	day, err := meals.ParseDay(day)
	if err != nil {
		return nil, apierr.Validation("%s", err.Error())
	}

	dbc := dbctx.Context{Ctx: ctx}
	selections, err := s.selectionRepo.ListByStudentDay(dbc, studentID, day)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	if len(selections) == 0 {
		return nil, nil
	}

	// The full template list is both the join target and the candidate pool.
	pool, err := s.templateRepo.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	byID := make(map[uuid.UUID]*types.FoodTemplate, len(pool))
	for _, t := range pool {
		byID[t.ID] = t
	}

	rows := make([]nutrition.Row, 0, len(selections))
	for _, sel := range orderBySlot(selections) {
		rows = append(rows, nutrition.Row{MealSlot: sel.MealSlot, Template: byID[sel.TemplateID]})
	}

	a := nutrition.Analyze(s.catalog, rows, pool)
	if a == nil {
		return nil, nil
	}
	a.Day = day
	span.SetAttributes(attribute.Int("skipped", a.Skipped), attribute.Int("suggestions", len(a.Suggestions)))
	if a.Skipped > 0 {
		s.log.Warn("skipped dangling selections", "student_id", studentID, "day", day, "count", a.Skipped)
	}
	return a, nil
}

// orderBySlot puts selections in serving order, keeping position order
// within each slot.
func orderBySlot(in []*types.Selection) []*types.Selection {
	out := make([]*types.Selection, 0, len(in))
	for _, slot := range meals.Slots {
		for _, s := range in {
			if s.MealSlot == slot {
				out = append(out, s)
			}
		}
	}
	return out
}
