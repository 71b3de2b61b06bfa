package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
)

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, &types.FoodTemplate{Name: "Rice"}, &types.FoodTemplate{Name: "Beans"})
	sel := env.selectionService()

	a, b := uuid.New(), uuid.New()
	submit := func(id uuid.UUID, day string, m map[string][]string) {
		t.Helper()
		if _, err := sel.ReplaceSelections(asActor(id, authz.RoleMember), id, day, m); err != nil {
			t.Fatalf("ReplaceSelections: %v", err)
		}
	}
	submit(a, "2024-02-01", map[string][]string{"lunch": {"Rice", "Beans"}, "dinner": {"Rice"}})
	submit(b, "2024-02-02", map[string][]string{"lunch": {"Rice"}})
	submit(b, "2024-03-01", map[string][]string{"breakfast": {"Beans"}})

	svc := NewStatsService(env.db, env.log, env.selections)
	org := asActor(uuid.New(), authz.RoleOrganisation)

	got, err := svc.Stats(org, "2024-02-01", "2024-02-28")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if got.TotalSelected != 4 || got.DistinctStudents != 2 {
		t.Fatalf("totals: %+v", got)
	}
	if got.BySlot["lunch"] != 3 || got.BySlot["dinner"] != 1 || got.BySlot["breakfast"] != 0 {
		t.Fatalf("BySlot: %v", got.BySlot)
	}
	if len(got.TopItems) != 2 || got.TopItems[0].Name != "Rice" || got.TopItems[0].Count != 3 {
		t.Fatalf("TopItems: %+v", got.TopItems)
	}

	all, err := svc.Stats(org, "", "")
	if err != nil || all.TotalSelected != 5 {
		t.Fatalf("unbounded Stats: %+v err=%v", all, err)
	}
}

func TestStatsRejects(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStatsService(env.db, env.log, env.selections)

	if _, err := svc.Stats(asActor(uuid.New(), authz.RoleMember), "", ""); !errors.Is(err, apierr.ErrForbidden) {
		t.Fatalf("member: expected forbidden, got %v", err)
	}
	org := asActor(uuid.New(), authz.RoleOrganisation)
	if _, err := svc.Stats(org, "2024-03-01", "2024-02-01"); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("inverted range: expected validation error, got %v", err)
	}
	if _, err := svc.Stats(org, "yesterday", ""); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("bad day: expected validation error, got %v", err)
	}
}
