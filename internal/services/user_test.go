package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/schoolmeal-backend/internal/data/repos/testutil"
	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
)

func TestUserProfile(t *testing.T) {
	e := newTestEnv(t)
	svc := NewUserService(e.db, e.log, e.users)
	u := testutil.SeedUser(t, context.Background(), e.db, "ada@school.edu", authz.RoleMember)
	dbc := dbctx.Context{Ctx: asActor(u.ID, authz.RoleMember)}

	me, err := svc.GetMe(dbc)
	if err != nil {
		t.Fatalf("GetMe: %v", err)
	}
	if me.ID != u.ID || me.Email != "ada@school.edu" {
		t.Fatalf("GetMe: %+v", me)
	}

	updated, err := svc.UpdateProfile(dbc, "  Ada ", "Lovelace", " North High ")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Ada" || updated.LastName != "Lovelace" || updated.School != "North High" {
		t.Fatalf("UpdateProfile: %+v", updated)
	}

	if _, err := svc.UpdateProfile(dbc, "", "Lovelace", ""); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("blank first name: want validation error, got %v", err)
	}
}

func TestUserProfileRequiresKnownActor(t *testing.T) {
	e := newTestEnv(t)
	svc := NewUserService(e.db, e.log, e.users)

	if _, err := svc.GetMe(dbctx.Context{Ctx: context.Background()}); !errors.Is(err, apierr.ErrUnauthorized) {
		t.Fatalf("anonymous: want unauthorized, got %v", err)
	}
	ghost := dbctx.Context{Ctx: asActor(uuid.New(), authz.RoleIndividual)}
	if _, err := svc.GetMe(ghost); !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("unknown user: want not found, got %v", err)
	}
}
