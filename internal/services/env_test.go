package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/data/repos"
	"github.com/yungbote/schoolmeal-backend/internal/data/repos/testutil"
	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/nutrition"
	"github.com/yungbote/schoolmeal-backend/internal/platform/ctxutil"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type testEnv struct {
	db  *gorm.DB
	log *logger.Logger

	users      repos.UserRepo
	tokens     repos.UserTokenRepo
	templates  repos.FoodTemplateRepo
	selections repos.SelectionRepo
	menus      repos.MenuItemRepo
	purges     repos.AuditPurgeRepo
	store      *memStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SQLite(t)
	log := testutil.Logger(t)
	return &testEnv{
		db:         db,
		log:        log,
		users:      repos.NewUserRepo(db, log),
		tokens:     repos.NewUserTokenRepo(db, log),
		templates:  repos.NewFoodTemplateRepo(db, log),
		selections: repos.NewSelectionRepo(db, log),
		menus:      repos.NewMenuItemRepo(db, log),
		purges:     repos.NewAuditPurgeRepo(db, log),
		store:      newMemStore(),
	}
}

func (e *testEnv) templateService() TemplateService {
	return NewTemplateService(e.db, e.log, e.templates)
}

func (e *testEnv) selectionService() SelectionService {
	return NewSelectionService(e.db, e.log, e.templates, e.selections, e.store)
}

func (e *testEnv) analysisService() AnalysisService {
	return NewAnalysisService(e.db, e.log, nutrition.DefaultCatalog(), e.templates, e.selections)
}

// seed inserts templates directly, bypassing role checks.
func (e *testEnv) seed(t *testing.T, tpls ...*types.FoodTemplate) {
	t.Helper()
	for _, tpl := range tpls {
		if err := e.db.Create(tpl).Error; err != nil {
			t.Fatalf("seed template %q: %v", tpl.Name, err)
		}
	}
}

func asActor(id uuid.UUID, role string) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: id, Role: role})
}

type memStore struct {
	mu   sync.Mutex
	subs map[uuid.UUID]*types.LatestSubmission
	err  error
}

func newMemStore() *memStore {
	return &memStore{subs: map[uuid.UUID]*types.LatestSubmission{}}
}

func (m *memStore) Put(_ context.Context, sub *types.LatestSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.subs[sub.StudentID] = sub
	return nil
}

func (m *memStore) Get(_ context.Context, studentID uuid.UUID) (*types.LatestSubmission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subs[studentID], nil
}
