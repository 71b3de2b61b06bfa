package meals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodTemplate is a named catalog item with fixed nutrient content.
// Nutrient columns are per serving; calories in kcal, sodium in mg, the rest in grams.
type FoodTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex;column:name" json:"name"`
	Calories  float64   `gorm:"not null;default:0;column:calories" json:"calories"`
	Protein   float64   `gorm:"not null;default:0;column:protein" json:"protein"`
	Carbs     float64   `gorm:"not null;default:0;column:carbs" json:"carbs"`
	Fats      float64   `gorm:"not null;default:0;column:fats" json:"fats"`
	Sugar     float64   `gorm:"not null;default:0;column:sugar" json:"sugar"`
	Fibre     float64   `gorm:"not null;default:0;column:fibre" json:"fibre"`
	Sodium    float64   `gorm:"not null;default:0;column:sodium" json:"sodium"`
	CreatedBy uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (FoodTemplate) TableName() string { return "food_template" }

func (t *FoodTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
