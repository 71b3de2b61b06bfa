package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return EnsureMealIndexes(db)
}

// EnsureMealIndexes adds the indexes gorm tags cannot express portably.
func EnsureMealIndexes(db *gorm.DB) error {
	// Stats group a day range by slot.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_selection_day_slot
		ON selection (day, meal_slot);
	`).Error; err != nil {
		return fmt.Errorf("create idx_selection_day_slot: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_menu_item_template
		ON menu_item (template_id);
	`).Error; err != nil {
		return fmt.Errorf("create idx_menu_item_template: %w", err)
	}
	return nil
}
