package legacy

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type CurrentMeal struct {
	Day       string   `json:"day"`
	MealSlot  string   `json:"meal_slot"`
	Status    string   `json:"status"`
	TimeRange string   `json:"time_range"`
	Items     []string `json:"items"`
}

// Service answers the deprecated CSV-menu and category-balance endpoints.
// Both files are read once at construction.
type Service struct {
	log    *logger.Logger
	menu   *Menu
	lookup *Lookup
}

func NewService(log *logger.Logger, menuPath, lookupPath string) (*Service, error) {
	menu, err := LoadMenu(menuPath)
	if err != nil {
		return nil, err
	}
	lookup, err := LoadLookup(lookupPath)
	if err != nil {
		return nil, err
	}
	return New(log, menu, lookup), nil
}

func New(log *logger.Logger, menu *Menu, lookup *Lookup) *Service {
	s := &Service{log: log.With("service", "LegacyService"), menu: menu, lookup: lookup}
	s.log.Info("legacy lookup loaded", "menu_days", menu.Len(), "foods", lookup.Len())
	return s
}

// Current resolves the slot served at now from the five-slot timetable and
// returns that day's CSV items for it.
func (s *Service) Current(ctx context.Context, now time.Time) (*CurrentMeal, error) {
	if _, err := authz.ActorFrom(ctx); err != nil {
		return nil, err
	}
	res, ok := Schedule.CurrentOrNext(now)
	if !ok {
		return nil, fmt.Errorf("legacy schedule is empty")
	}
	items := s.menu.Day(res.Day)[res.Window.Slot]
	if items == nil {
		items = []string{}
	}
	return &CurrentMeal{
		Day:       res.Day,
		MealSlot:  res.Window.Slot,
		Status:    res.Status,
		TimeRange: res.Window.Range(),
		Items:     items,
	}, nil
}

func (s *Service) Suggest(ctx context.Context, items []string) (*Balance, error) {
	if _, err := authz.ActorFrom(ctx); err != nil {
		return nil, err
	}
	b := s.lookup.Suggest(items)
	return &b, nil
}
