package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"purser/internal/domain/invite"
	"purser/internal/infrastructure/persistence/mappers"
	"purser/internal/infrastructure/persistence/models"
	"purser/internal/shared/db"
)

type InviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, inv *invite.TeamInvite) error {
	model := mappers.InviteToModel(inv)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}

	return inv.SetID(model.ID)
}

func (r *InviteRepository) Update(ctx context.Context, inv *invite.TeamInvite) error {
	model := mappers.InviteToModel(inv)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.InviteModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":      model.Status,
			"accepted_at": model.AcceptedAt,
			"updated_at":  model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update invite: %w", result.Error)
	}

	return nil
}

func (r *InviteRepository) FindBySID(ctx context.Context, sid string) (*invite.TeamInvite, error) {
	var model models.InviteModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invite.ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite by sid: %w", err)
	}

	return mappers.InviteToDomain(&model)
}

func (r *InviteRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*invite.TeamInvite, error) {
	var model models.InviteModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("token_hash = ?", tokenHash).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invite.ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite by token hash: %w", err)
	}

	return mappers.InviteToDomain(&model)
}

func (r *InviteRepository) FindPendingByEmail(ctx context.Context, agencyID uint, email string) (*invite.TeamInvite, error) {
	var model models.InviteModel

	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ByAgency(agencyID)).
		Where("email = ? AND status = ?", email, invite.StatusPending).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invite.ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find pending invite: %w", err)
	}

	return mappers.InviteToDomain(&model)
}

func (r *InviteRepository) ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*invite.TeamInvite, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.InviteModel{}).
		Scopes(db.ByAgency(agencyID)).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invites: %w", err)
	}

	var inviteModels []models.InviteModel
	if err := tx.
		Scopes(db.ByAgency(agencyID)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&inviteModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list invites: %w", err)
	}

	invites := make([]*invite.TeamInvite, len(inviteModels))
	for i := range inviteModels {
		inv, err := mappers.InviteToDomain(&inviteModels[i])
		if err != nil {
			return nil, 0, err
		}
		invites[i] = inv
	}

	return invites, total, nil
}
