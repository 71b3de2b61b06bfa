package meals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditPurge records one run of the dangling-selection purge.
type AuditPurge struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID      uuid.UUID      `gorm:"type:uuid;column:actor_id" json:"actor_id"`
	PurgedCount  int            `gorm:"not null;default:0;column:purged_count" json:"purged_count"`
	SelectionIDs datatypes.JSON `gorm:"column:selection_ids" json:"selection_ids"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (AuditPurge) TableName() string { return "audit_purge" }

func (a *AuditPurge) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
