package meals

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/schoolmeal-backend/internal/data/repos/testutil"
	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	dmeals "github.com/yungbote/schoolmeal-backend/internal/domain/meals"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
)

func TestSelectionRepoReplaceAndList(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewSelectionRepo(gdb, testutil.Logger(t))

	student := testutil.SeedUser(t, ctx, tx, "student@school.org", "member")
	eggs := testutil.SeedTemplate(t, ctx, tx, "Eggs", nil)
	toast := testutil.SeedTemplate(t, ctx, tx, "Toast", nil)

	if _, err := repo.Create(dbc, []*types.Selection{
		{StudentID: student.ID, Day: "2024-03-01", MealSlot: dmeals.SlotBreakfast, TemplateID: toast.ID, Position: 1},
		{StudentID: student.ID, Day: "2024-03-01", MealSlot: dmeals.SlotBreakfast, TemplateID: eggs.ID, Position: 0},
		{StudentID: student.ID, Day: "2024-03-02", MealSlot: dmeals.SlotLunch, TemplateID: eggs.ID, Position: 0},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.ListByStudentDay(dbc, student.ID, "2024-03-01")
	if err != nil {
		t.Fatalf("ListByStudentDay: %v", err)
	}
	if len(rows) != 2 || rows[0].TemplateID != eggs.ID || rows[1].TemplateID != toast.ID {
		t.Fatalf("ListByStudentDay: expected position order, got %+v", rows)
	}

	n, err := repo.DeleteByStudentDay(dbc, student.ID, "2024-03-01")
	if err != nil || n != 2 {
		t.Fatalf("DeleteByStudentDay: err=%v n=%d", err, n)
	}
	rows, err = repo.ListByStudentDay(dbc, student.ID, "2024-03-01")
	if err != nil || len(rows) != 0 {
		t.Fatalf("ListByStudentDay after delete: err=%v len=%d", err, len(rows))
	}
	rows, err = repo.ListByStudentDay(dbc, student.ID, "2024-03-02")
	if err != nil || len(rows) != 1 {
		t.Fatalf("other day must be untouched: err=%v len=%d", err, len(rows))
	}
}

func TestSelectionRepoDangling(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewSelectionRepo(gdb, testutil.Logger(t))

	student := uuid.New()
	live := testutil.SeedTemplate(t, ctx, tx, "Rice", nil)
	ok := testutil.SeedSelection(t, ctx, tx, student, "2024-03-01", dmeals.SlotLunch, live.ID, 0)
	gone := testutil.SeedSelection(t, ctx, tx, student, "2024-03-01", dmeals.SlotLunch, uuid.New(), 1)

	dangling, err := repo.ListDangling(dbc)
	if err != nil {
		t.Fatalf("ListDangling: %v", err)
	}
	if len(dangling) != 1 || dangling[0].ID != gone.ID {
		t.Fatalf("ListDangling: expected only %s, got %+v", gone.ID, dangling)
	}

	n, err := repo.DeleteByIDs(dbc, []uuid.UUID{gone.ID})
	if err != nil || n != 1 {
		t.Fatalf("DeleteByIDs: err=%v n=%d", err, n)
	}
	rows, err := repo.ListByStudentDay(dbc, student, "2024-03-01")
	if err != nil || len(rows) != 1 || rows[0].ID != ok.ID {
		t.Fatalf("after purge: err=%v rows=%+v", err, rows)
	}
}

func TestSelectionRepoStats(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewSelectionRepo(gdb, testutil.Logger(t))

	a, b := uuid.New(), uuid.New()
	rice := testutil.SeedTemplate(t, ctx, tx, "Rice", nil)
	beans := testutil.SeedTemplate(t, ctx, tx, "Beans", nil)
	apple := testutil.SeedTemplate(t, ctx, tx, "Apple", nil)

	testutil.SeedSelection(t, ctx, tx, a, "2024-03-01", dmeals.SlotLunch, rice.ID, 0)
	testutil.SeedSelection(t, ctx, tx, a, "2024-03-01", dmeals.SlotLunch, beans.ID, 1)
	testutil.SeedSelection(t, ctx, tx, b, "2024-03-01", dmeals.SlotLunch, rice.ID, 0)
	testutil.SeedSelection(t, ctx, tx, b, "2024-03-02", dmeals.SlotBreakfast, apple.ID, 0)
	testutil.SeedSelection(t, ctx, tx, b, "2024-03-02", dmeals.SlotDinner, beans.ID, 0)
	testutil.SeedSelection(t, ctx, tx, a, "2024-04-01", dmeals.SlotDinner, apple.ID, 0)

	march := DayRange{From: "2024-03-01", To: "2024-03-31"}

	total, err := repo.CountInRange(dbc, march)
	if err != nil || total != 5 {
		t.Fatalf("CountInRange: err=%v total=%d", err, total)
	}
	all, err := repo.CountInRange(dbc, DayRange{})
	if err != nil || all != 6 {
		t.Fatalf("CountInRange(open): err=%v total=%d", err, all)
	}
	students, err := repo.CountStudentsInRange(dbc, DayRange{From: "2024-03-02"})
	if err != nil || students != 2 {
		t.Fatalf("CountStudentsInRange: err=%v n=%d", err, students)
	}

	slots, err := repo.CountBySlot(dbc, march)
	if err != nil {
		t.Fatalf("CountBySlot: %v", err)
	}
	bySlot := map[string]int64{}
	for _, s := range slots {
		bySlot[s.MealSlot] = s.Count
	}
	if bySlot[dmeals.SlotLunch] != 3 || bySlot[dmeals.SlotBreakfast] != 1 || bySlot[dmeals.SlotDinner] != 1 {
		t.Fatalf("CountBySlot: unexpected %+v", slots)
	}

	top, err := repo.TopTemplates(dbc, march, 2)
	if err != nil {
		t.Fatalf("TopTemplates: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopTemplates: expected 2, got %+v", top)
	}
	// Beans and Rice both have 2; ties go by name.
	if top[0].Name != "Beans" || top[0].Count != 2 || top[1].Name != "Rice" || top[1].Count != 2 {
		t.Fatalf("TopTemplates: unexpected order %+v", top)
	}
}
