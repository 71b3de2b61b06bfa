package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/schoolmeal-backend/internal/data/repos"
	types "github.com/yungbote/schoolmeal-backend/internal/domain"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/platform/dbctx"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type PurgeResult struct {
	Purged       int         `json:"purged"`
	SelectionIDs []uuid.UUID `json:"selection_ids"`
	AuditID      uuid.UUID   `json:"audit_id"`
}

type AuditService interface {
	ListDangling(ctx context.Context) ([]*types.Selection, error)
	PurgeDangling(ctx context.Context) (*PurgeResult, error)
}

type auditService struct {
	db            *gorm.DB
	log           *logger.Logger
	selectionRepo repos.SelectionRepo
	purgeRepo     repos.AuditPurgeRepo
}

func NewAuditService(db *gorm.DB, log *logger.Logger, selectionRepo repos.SelectionRepo, purgeRepo repos.AuditPurgeRepo) AuditService {
	return &auditService{
		db:            db,
		log:           log.With("service", "AuditService"),
		selectionRepo: selectionRepo,
		purgeRepo:     purgeRepo,
	}
}

// ListDangling enumerates selections whose template no longer exists.
func (s *auditService) ListDangling(ctx context.Context) ([]*types.Selection, error) {
	if _, err := authz.RequireCtx(ctx, authz.RoleOrganisation); err != nil {
		return nil, err
	}
	rows, err := s.selectionRepo.ListDangling(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list dangling selections: %w", err)
	}
	if rows == nil {
		rows = []*types.Selection{}
	}
	return rows, nil
}

// PurgeDangling deletes every dangling selection and records the run, all in
// one transaction.
func (s *auditService) PurgeDangling(ctx context.Context) (*PurgeResult, error) {
	actor, err := authz.RequireCtx(ctx, authz.RoleOrganisation)
	if err != nil {
		return nil, err
	}
	out := &PurgeResult{SelectionIDs: []uuid.UUID{}}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		rows, err := s.selectionRepo.ListDangling(dbc)
		if err != nil {
			return fmt.Errorf("list dangling selections: %w", err)
		}
		for _, r := range rows {
			out.SelectionIDs = append(out.SelectionIDs, r.ID)
		}
		n, err := s.selectionRepo.DeleteByIDs(dbc, out.SelectionIDs)
		if err != nil {
			return fmt.Errorf("delete dangling selections: %w", err)
		}
		out.Purged = int(n)

		raw, err := json.Marshal(out.SelectionIDs)
		if err != nil {
			return err
		}
		rec := &types.AuditPurge{
			ActorID:      actor.ID,
			PurgedCount:  out.Purged,
			SelectionIDs: datatypes.JSON(raw),
		}
		if err := s.purgeRepo.Create(dbc, rec); err != nil {
			return fmt.Errorf("record purge: %w", err)
		}
		out.AuditID = rec.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("purged dangling selections", "actor_id", actor.ID, "count", out.Purged)
	return out, nil
}
