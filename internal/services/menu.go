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

type DayMenu struct {
	Day   string                           `json:"day"`
	Slots map[string][]*types.FoodTemplate `json:"slots"`
}

type CurrentMenu struct {
	Day       string                `json:"day"`
	MealSlot  string                `json:"meal_slot"`
	Status    string                `json:"status"`
	TimeRange string                `json:"time_range"`
	Items     []*types.FoodTemplate `json:"items"`
}

type MenuService interface {
	PublishMenu(ctx context.Context, day, slot string, names []string) ([]*types.FoodTemplate, error)
	GetMenu(ctx context.Context, day string) (*DayMenu, error)
	CurrentMenu(ctx context.Context, now time.Time) (*CurrentMenu, error)
}

type menuService struct {
	db           *gorm.DB
	log          *logger.Logger
	schedule     meals.Schedule
	templateRepo repos.FoodTemplateRepo
	menuRepo     repos.MenuItemRepo
}

func NewMenuService(
	db *gorm.DB,
	log *logger.Logger,
	schedule meals.Schedule,
	templateRepo repos.FoodTemplateRepo,
	menuRepo repos.MenuItemRepo,
) MenuService {
	if len(schedule) == 0 {
		schedule = meals.DefaultSchedule
	}
	return &menuService{
		db:           db,
		log:          log.With("service", "MenuService"),
		schedule:     schedule,
		templateRepo: templateRepo,
		menuRepo:     menuRepo,
	}
}

// PublishMenu replaces the menu for (day, slot). Unknown names are dropped.
func (s *menuService) PublishMenu(ctx context.Context, day, slot string, names []string) ([]*types.FoodTemplate, error) {
	actor, err := authz.RequireCtx(ctx, authz.RoleOrganisation)
	if err != nil {
		return nil, err
	}
	day, err = meals.ParseDay(day)
	if err != nil {
		return nil, apierr.Validation("%s", err.Error())
	}
	slot = meals.NormalizeSlot(slot)
	if !meals.ValidSlot(slot) {
		return nil, apierr.Validation("unknown meal slot %q", slot)
	}
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}

	var published []*types.FoodTemplate
	var dropped []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		tpls, err := s.templateRepo.GetByNames(dbc, clean)
		if err != nil {
			return fmt.Errorf("resolve templates: %w", err)
		}
		byName := make(map[string]*types.FoodTemplate, len(tpls))
		for _, t := range tpls {
			byName[t.Name] = t
		}
		if _, err := s.menuRepo.DeleteByDaySlot(dbc, day, slot); err != nil {
			return fmt.Errorf("clear menu: %w", err)
		}
		var items []*types.MenuItem
		for _, n := range clean {
			t, ok := byName[n]
			if !ok {
				dropped = append(dropped, n)
				continue
			}
			items = append(items, &types.MenuItem{
				Day:        day,
				MealSlot:   slot,
				TemplateID: t.ID,
				Position:   len(items),
				CreatedBy:  actor.ID,
			})
			published = append(published, t)
		}
		if _, err := s.menuRepo.Create(dbc, items); err != nil {
			return fmt.Errorf("insert menu items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		s.log.Warn("dropped unknown menu items", "day", day, "meal_slot", slot, "names", dropped)
	}
	if published == nil {
		published = []*types.FoodTemplate{}
	}
	return published, nil
}

func (s *menuService) GetMenu(ctx context.Context, day string) (*DayMenu, error) {
	if _, err := authz.ActorFrom(ctx); err != nil {
		return nil, err
	}
	day, err := meals.ParseDay(day)
	if err != nil {
		return nil, apierr.Validation("%s", err.Error())
	}
	dbc := dbctx.Context{Ctx: ctx}
	items, err := s.menuRepo.ListByDay(dbc, day)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	resolved, err := s.resolve(dbc, items)
	if err != nil {
		return nil, err
	}
	out := &DayMenu{Day: day, Slots: map[string][]*types.FoodTemplate{}}
	for i, it := range items {
		if resolved[i] != nil {
			out.Slots[it.MealSlot] = append(out.Slots[it.MealSlot], resolved[i])
		}
	}
	return out, nil
}

// CurrentMenu returns the slot being served at now, the next one today, or
// the first one tomorrow, with its published items.
func (s *menuService) CurrentMenu(ctx context.Context, now time.Time) (*CurrentMenu, error) {
	if _, err := authz.ActorFrom(ctx); err != nil {
		return nil, err
	}
	res, ok := s.schedule.CurrentOrNext(now)
	if !ok {
		return nil, apierr.NotFound("meal schedule")
	}
	dbc := dbctx.Context{Ctx: ctx}
	items, err := s.menuRepo.ListByDaySlot(dbc, res.Day, res.Window.Slot)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	resolved, err := s.resolve(dbc, items)
	if err != nil {
		return nil, err
	}
	out := &CurrentMenu{
		Day:       res.Day,
		MealSlot:  res.Window.Slot,
		Status:    res.Status,
		TimeRange: res.Window.Range(),
		Items:     []*types.FoodTemplate{},
	}
	for _, t := range resolved {
		if t != nil {
			out.Items = append(out.Items, t)
		}
	}
	return out, nil
}

// resolve maps menu items to templates index by index; deleted templates
// resolve to nil.
func (s *menuService) resolve(dbc dbctx.Context, items []*types.MenuItem) ([]*types.FoodTemplate, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.TemplateID)
	}
	tpls, err := s.templateRepo.GetByIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	byID := make(map[uuid.UUID]*types.FoodTemplate, len(tpls))
	for _, t := range tpls {
		byID[t.ID] = t
	}
	out := make([]*types.FoodTemplate, len(items))
	for i, it := range items {
		out[i] = byID[it.TemplateID]
	}
	return out, nil
}
