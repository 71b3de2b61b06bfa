package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/data/repos"
	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/domain/meals"
	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

// SubmissionStore keeps the latest submission per student. A nil store
// disables the feature.
type SubmissionStore interface {
	Put(ctx context.Context, sub *types.LatestSubmission) error
	Get(ctx context.Context, studentID uuid.UUID) (*types.LatestSubmission, error)
}

type SelectionSet struct {
	Day     string              `json:"day"`
	Meals   map[string][]string `json:"meals"`
	Dropped []string            `json:"dropped,omitempty"`
}

type SelectionService interface {
	ReplaceSelections(ctx context.Context, studentID uuid.UUID, day string, submitted map[string][]string) (*SelectionSet, error)
	GetSelections(ctx context.Context, studentID uuid.UUID, day string) (*SelectionSet, error)
	LatestSubmission(ctx context.Context, studentID uuid.UUID) (*types.LatestSubmission, error)
}

type selectionService struct {
	db            *gorm.DB
	log           *logger.Logger
	templateRepo  repos.FoodTemplateRepo
	selectionRepo repos.SelectionRepo
	store         SubmissionStore
}

func NewSelectionService(
	db *gorm.DB,
	log *logger.Logger,
	templateRepo repos.FoodTemplateRepo,
	selectionRepo repos.SelectionRepo,
	store SubmissionStore,
) SelectionService {
	return &selectionService{
		db:            db,
		log:           log.With("service", "SelectionService"),
		templateRepo:  templateRepo,
		selectionRepo: selectionRepo,
		store:         store,
	}
}

// requireSelf allows a student acting on their own selections.
func requireSelf(ctx context.Context, studentID uuid.UUID) (authz.Actor, error) {
	actor, err := authz.RequireCtx(ctx, authz.Students...)
	if err != nil {
		return authz.Actor{}, err
	}
	if actor.ID != studentID {
		return authz.Actor{}, apierr.Forbidden("students may only access their own selections")
	}
	return actor, nil
}

func normalizeSubmission(submitted map[string][]string) (map[string][]string, error) {
	out := make(map[string][]string, len(submitted))
	for rawSlot, names := range submitted {
		slot := meals.NormalizeSlot(rawSlot)
		if !meals.ValidSlot(slot) {
			return nil, apierr.Validation("unknown meal slot %q", rawSlot)
		}
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				out[slot] = append(out[slot], n)
			}
		}
	}
	return out, nil
}

// ReplaceSelections swaps the whole set for (studentID, day) in one
// transaction. Names that match no template are dropped and logged.
func (s *selectionService) ReplaceSelections(ctx context.Context, studentID uuid.UUID, day string, submitted map[string][]string) (*SelectionSet, error) {
	if _, err := requireSelf(ctx, studentID); err != nil {
		return nil, err
	}
	day, err := meals.ParseDay(day)
	if err != nil {
		return nil, apierr.Validation("%s", err.Error())
	}
	bySlot, err := normalizeSubmission(submitted)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, slot := range meals.Slots {
		names = append(names, bySlot[slot]...)
	}

	out := &SelectionSet{Day: day, Meals: map[string][]string{}}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		tpls, err := s.templateRepo.GetByNames(dbc, names)
		if err != nil {
			return fmt.Errorf("resolve templates: %w", err)
		}
		byName := make(map[string]*types.FoodTemplate, len(tpls))
		for _, t := range tpls {
			byName[t.Name] = t
		}

		if _, err := s.selectionRepo.DeleteByStudentDay(dbc, studentID, day); err != nil {
			return fmt.Errorf("delete prior selections: %w", err)
		}

		var rows []*types.Selection
		for _, slot := range meals.Slots {
			pos := 0
			for _, name := range bySlot[slot] {
				t, ok := byName[name]
				if !ok {
					out.Dropped = append(out.Dropped, name)
					continue
				}
				rows = append(rows, &types.Selection{
					StudentID:  studentID,
					Day:        day,
					MealSlot:   slot,
					TemplateID: t.ID,
					Position:   pos,
				})
				out.Meals[slot] = append(out.Meals[slot], t.Name)
				pos++
			}
		}
		if _, err := s.selectionRepo.Create(dbc, rows); err != nil {
			return fmt.Errorf("insert selections: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(out.Dropped) > 0 {
		s.log.Warn("dropped unknown template names", "student_id", studentID, "day", day, "names", out.Dropped)
	}
	s.recordLatest(ctx, studentID, out)
	return out, nil
}

func (s *selectionService) recordLatest(ctx context.Context, studentID uuid.UUID, set *SelectionSet) {
	if s.store == nil {
		return
	}
	sub := &types.LatestSubmission{
		StudentID:   studentID,
		Day:         set.Day,
		Meals:       set.Meals,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, sub); err != nil {
		s.log.Warn("record latest submission failed", "student_id", studentID, "error", err)
	}
}

func (s *selectionService) GetSelections(ctx context.Context, studentID uuid.UUID, day string) (*SelectionSet, error) {
	if _, err := requireSelf(ctx, studentID); err != nil {
		return nil, err
	}
	day, err := meals.ParseDay(day)
	if err != nil {
		return nil, apierr.Validation("%s", err.Error())
	}
	dbc := dbctx.Context{Ctx: ctx}
	rows, err := s.selectionRepo.ListByStudentDay(dbc, studentID, day)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.TemplateID)
	}
	tpls, err := s.templateRepo.GetByIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	byID := make(map[uuid.UUID]string, len(tpls))
	for _, t := range tpls {
		byID[t.ID] = t.Name
	}
	out := &SelectionSet{Day: day, Meals: map[string][]string{}}
	for _, r := range rows {
		if name, ok := byID[r.TemplateID]; ok {
			out.Meals[r.MealSlot] = append(out.Meals[r.MealSlot], name)
		}
	}
	return out, nil
}

// LatestSubmission returns nil, nil when nothing is recorded or the store is
// disabled.
func (s *selectionService) LatestSubmission(ctx context.Context, studentID uuid.UUID) (*types.LatestSubmission, error) {
	if _, err := requireSelf(ctx, studentID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, nil
	}
	sub, err := s.store.Get(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("read latest submission: %w", err)
	}
	return sub, nil
}
