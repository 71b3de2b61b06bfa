// Package authz is the single role capability check used by services and
// route guards.
package authz

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
	"github.com/yungbote/schoolmeal-backend/internal/platform/ctxutil"
)

const (
	RoleOrganisation = "organisation"
	RoleMember       = "member"
	RoleIndividual   = "individual"
)

// Students are the roles that submit selections and read their own analysis.
var Students = []string{RoleMember, RoleIndividual}

func ValidRole(role string) bool {
	switch role {
	case RoleOrganisation, RoleMember, RoleIndividual:
		return true
	}
	return false
}

// NormalizeRole lower-cases and trims role, accepting the US spelling.
func NormalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == "organization" {
		return RoleOrganisation
	}
	return r
}

type Actor struct {
	ID   uuid.UUID
	Role string
}

// ActorFrom reads the authenticated actor from ctx.
func ActorFrom(ctx context.Context) (Actor, error) {
	rd := ctxutil.GetRequestData(ctxutil.Default(ctx))
	if rd == nil || rd.UserID == uuid.Nil {
		return Actor{}, apierr.Unauthorized("no authenticated user")
	}
	return Actor{ID: rd.UserID, Role: rd.Role}, nil
}

// Require fails with a forbidden error unless actor holds one of roles.
func Require(actor Actor, roles ...string) error {
	if actor.ID == uuid.Nil {
		return apierr.Unauthorized("no authenticated user")
	}
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return apierr.Forbidden("role " + quoteRole(actor.Role) + " may not perform this operation")
}

// RequireCtx is ActorFrom followed by Require.
func RequireCtx(ctx context.Context, roles ...string) (Actor, error) {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return Actor{}, err
	}
	if err := Require(actor, roles...); err != nil {
		return Actor{}, err
	}
	return actor, nil
}

func quoteRole(r string) string {
	if r == "" {
		return `""`
	}
	return r
}
