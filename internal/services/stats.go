package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/data/repos"
	"github.com/yungbote/schoolmeal-backend/internal/domain/meals"
	"github.com/yungbote/schoolmeal-backend/internal/observability"
	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

const topItemsLimit = 10

type SelectionStats struct {
	From             string                `json:"from,omitempty"`
	To               string                `json:"to,omitempty"`
	TotalSelected    int64                 `json:"total_selected"`
	DistinctStudents int64                 `json:"distinct_students"`
	BySlot           map[string]int64      `json:"by_slot"`
	TopItems         []repos.TemplateCount `json:"top_items"`
}

type StatsService interface {
	Stats(ctx context.Context, from, to string) (*SelectionStats, error)
}

type statsService struct {
	db            *gorm.DB
	log           *logger.Logger
	selectionRepo repos.SelectionRepo
}

func NewStatsService(db *gorm.DB, log *logger.Logger, selectionRepo repos.SelectionRepo) StatsService {
	return &statsService{
		db:            db,
		log:           log.With("service", "StatsService"),
		selectionRepo: selectionRepo,
	}
}

func parseOptionalDay(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	day, err := meals.ParseDay(raw)
	if err != nil {
		return "", apierr.Validation("%s", err.Error())
	}
	return day, nil
}

// Stats summarises selections in [from, to]. Either bound may be empty.
func (s *statsService) Stats(ctx context.Context, from, to string) (*SelectionStats, error) {
	ctx, span := observability.Tracer("services").Start(ctx, "StatsService.Stats")
	defer span.End()

	if _, err := authz.RequireCtx(ctx, authz.RoleOrganisation); err != nil {
		return nil, err
	}
	from, err := parseOptionalDay(from)
	if err != nil {
		return nil, err
	}
	to, err = parseOptionalDay(to)
	if err != nil {
		return nil, err
	}
	if from != "" && to != "" && from > to {
		return nil, apierr.Validation("from %s is after to %s", from, to)
	}
	rg := repos.DayRange{From: from, To: to}
	out := &SelectionStats{From: from, To: to, BySlot: map[string]int64{}}

	var slots []repos.SlotCount
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}
	g.Go(func() error {
		n, err := s.selectionRepo.CountInRange(dbc, rg)
		if err != nil {
			return fmt.Errorf("count selections: %w", err)
		}
		out.TotalSelected = n
		return nil
	})
	g.Go(func() error {
		n, err := s.selectionRepo.CountStudentsInRange(dbc, rg)
		if err != nil {
			return fmt.Errorf("count students: %w", err)
		}
		out.DistinctStudents = n
		return nil
	})
	g.Go(func() error {
		rows, err := s.selectionRepo.CountBySlot(dbc, rg)
		if err != nil {
			return fmt.Errorf("count by slot: %w", err)
		}
		slots = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.selectionRepo.TopTemplates(dbc, rg, topItemsLimit)
		if err != nil {
			return fmt.Errorf("top items: %w", err)
		}
		out.TopItems = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, sc := range slots {
		out.BySlot[sc.MealSlot] = sc.Count
	}
	if out.TopItems == nil {
		out.TopItems = []repos.TemplateCount{}
	}
	return out, nil
}
