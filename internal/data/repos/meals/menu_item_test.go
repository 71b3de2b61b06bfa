package meals

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/schoolmeal-backend/internal/data/repos/testutil"
	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	dmeals "github.com/yungbote/schoolmeal-backend/internal/domain/meals"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
)

func TestMenuItemRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewMenuItemRepo(gdb, testutil.Logger(t))

	day := "2024-03-01"
	t1, t2 := uuid.New(), uuid.New()
	if _, err := repo.Create(dbc, []*types.MenuItem{
		{Day: day, MealSlot: dmeals.SlotLunch, TemplateID: t2, Position: 1},
		{Day: day, MealSlot: dmeals.SlotLunch, TemplateID: t1, Position: 0},
		{Day: day, MealSlot: dmeals.SlotBreakfast, TemplateID: t1, Position: 0},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	lunch, err := repo.ListByDaySlot(dbc, day, dmeals.SlotLunch)
	if err != nil || len(lunch) != 2 || lunch[0].TemplateID != t1 {
		t.Fatalf("ListByDaySlot: err=%v rows=%+v", err, lunch)
	}

	n, err := repo.DeleteByDaySlot(dbc, day, dmeals.SlotLunch)
	if err != nil || n != 2 {
		t.Fatalf("DeleteByDaySlot: err=%v n=%d", err, n)
	}
	all, err := repo.ListByDay(dbc, day)
	if err != nil || len(all) != 1 || all[0].MealSlot != dmeals.SlotBreakfast {
		t.Fatalf("ListByDay: err=%v rows=%+v", err, all)
	}
}

func TestAuditPurgeRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewAuditPurgeRepo(gdb, testutil.Logger(t))

	row := &types.AuditPurge{
		ActorID:      uuid.New(),
		PurgedCount:  2,
		SelectionIDs: datatypes.JSON([]byte(`["a","b"]`)),
	}
	if err := repo.Create(dbc, row); err != nil {
		t.Fatalf("Create: %v", err)
	}
	rows, err := repo.ListRecent(dbc, 5)
	if err != nil || len(rows) != 1 || rows[0].PurgedCount != 2 {
		t.Fatalf("ListRecent: err=%v rows=%+v", err, rows)
	}
}
