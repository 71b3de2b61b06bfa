package meals

import (
	"gorm.io/gorm"

	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type AuditPurgeRepo interface {
	Create(dbc dbctx.Context, row *types.AuditPurge) error
	ListRecent(dbc dbctx.Context, limit int) ([]*types.AuditPurge, error)
}

type auditPurgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditPurgeRepo(db *gorm.DB, baseLog *logger.Logger) AuditPurgeRepo {
	return &auditPurgeRepo{db: db, log: baseLog.With("repo", "AuditPurgeRepo")}
}

func (r *auditPurgeRepo) Create(dbc dbctx.Context, row *types.AuditPurge) error {
	if row == nil {
		return nil
	}
	return dbc.Conn(r.db).Create(row).Error
}

func (r *auditPurgeRepo) ListRecent(dbc dbctx.Context, limit int) ([]*types.AuditPurge, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []*types.AuditPurge
	if err := dbc.Conn(r.db).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
