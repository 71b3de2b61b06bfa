package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/schoolmeal-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, role string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Role:      role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedTemplate creates a template; set, if non-nil, fills nutrient values.
func SeedTemplate(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, set func(t *types.FoodTemplate)) *types.FoodTemplate {
	tb.Helper()
	t := &types.FoodTemplate{ID: uuid.New(), Name: name}
	if set != nil {
		set(t)
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed template: %v", err)
	}
	return t
}

func SeedSelection(tb testing.TB, ctx context.Context, tx *gorm.DB, studentID uuid.UUID, day, slot string, templateID uuid.UUID, position int) *types.Selection {
	tb.Helper()
	s := &types.Selection{
		ID:         uuid.New(),
		StudentID:  studentID,
		Day:        day,
		MealSlot:   slot,
		TemplateID: templateID,
		Position:   position,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed selection: %v", err)
	}
	return s
}
