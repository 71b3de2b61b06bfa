package meals

import (
	"context"
	"testing"

	"github.com/yungbote/schoolmeal-backend/internal/data/db"
	"github.com/yungbote/schoolmeal-backend/internal/data/repos/testutil"
	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
)

func TestFoodTemplateRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewFoodTemplateRepo(gdb, testutil.Logger(t))

	created, err := repo.Create(dbc, []*types.FoodTemplate{
		{Name: "Porridge", Fibre: 4},
		{Name: "Apple", Fibre: 2.4},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Create: expected 2 templates, got %d", len(created))
	}

	list, err := repo.List(dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Apple" || list[1].Name != "Porridge" {
		t.Fatalf("List: expected name order, got %+v", list)
	}

	byName, err := repo.GetByNames(dbc, []string{"Porridge", "Missing"})
	if err != nil || len(byName) != 1 || byName[0].Fibre != 4 {
		t.Fatalf("GetByNames: err=%v rows=%+v", err, byName)
	}

	exists, err := repo.ExistsByName(dbc, "Apple")
	if err != nil || !exists {
		t.Fatalf("ExistsByName: err=%v exists=%v", err, exists)
	}

	if _, err := repo.Create(dbc, []*types.FoodTemplate{{Name: "Apple"}}); err == nil || !db.IsUniqueViolation(err) {
		t.Fatalf("Create duplicate: expected unique violation, got %v", err)
	}
}

func TestFoodTemplateRepoDelete(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewFoodTemplateRepo(gdb, testutil.Logger(t))

	tpl := testutil.SeedTemplate(t, ctx, tx, "Toast", nil)
	deleted, err := repo.DeleteByID(dbc, tpl.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteByID: err=%v deleted=%v", err, deleted)
	}
	deleted, err = repo.DeleteByID(dbc, tpl.ID)
	if err != nil || deleted {
		t.Fatalf("DeleteByID again: err=%v deleted=%v", err, deleted)
	}
	rows, err := repo.GetByIDs(dbc, nil)
	if err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs(empty): err=%v rows=%d", err, len(rows))
	}
}
