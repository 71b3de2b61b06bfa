package meals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem is one published template on the menu for (Day, MealSlot).
type MenuItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Day        string    `gorm:"type:varchar(10);not null;index:idx_menu_item_day_slot,priority:1;column:day" json:"day"`
	MealSlot   string    `gorm:"type:varchar(16);not null;index:idx_menu_item_day_slot,priority:2;column:meal_slot" json:"meal_slot"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null;column:template_id" json:"template_id"`
	Position   int       `gorm:"not null;default:0;column:position" json:"position"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (MenuItem) TableName() string { return "menu_item" }

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
