package domain

import (
	"github.com/yungbote/schoolmeal-backend/internal/domain/auth"
	"github.com/yungbote/schoolmeal-backend/internal/domain/meals"
	"github.com/yungbote/schoolmeal-backend/internal/domain/user"
)

type User = user.User
type UserToken = auth.UserToken

type FoodTemplate = meals.FoodTemplate
type Selection = meals.Selection
type MenuItem = meals.MenuItem
type AuditPurge = meals.AuditPurge
type LatestSubmission = meals.LatestSubmission

// Models lists every persisted type, in migration order.
func Models() []any {
	return []any{
		&User{},
		&UserToken{},
		&FoodTemplate{},
		&Selection{},
		&MenuItem{},
		&AuditPurge{},
	}
}
