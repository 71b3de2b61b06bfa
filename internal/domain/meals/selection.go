package meals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Selection links a student, a day and a meal slot to one template.
// The set for (StudentID, Day) is only ever replaced wholesale.
type Selection struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;index:idx_selection_student_day,priority:1;column:student_id" json:"student_id"`
	Day        string    `gorm:"type:varchar(10);not null;index:idx_selection_student_day,priority:2;index:idx_selection_day;column:day" json:"day"`
	MealSlot   string    `gorm:"type:varchar(16);not null;column:meal_slot" json:"meal_slot"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null;index;column:template_id" json:"template_id"`
	Position   int       `gorm:"not null;default:0;column:position" json:"position"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Selection) TableName() string { return "selection" }

func (s *Selection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
