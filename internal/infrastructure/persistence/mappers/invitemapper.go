package mappers

import (
	"purser/internal/domain/invite"
	"purser/internal/infrastructure/persistence/models"
	"purser/internal/shared/authorization"
)

func InviteToModel(i *invite.TeamInvite) *models.InviteModel {
	return &models.InviteModel{
		ID:         i.ID(),
		SID:        i.SID(),
		AgencyID:   i.AgencyID(),
		Email:      i.Email(),
		Role:       i.Role().String(),
		TokenHash:  i.TokenHash(),
		Status:     string(i.Status()),
		InvitedBy:  i.InvitedBy(),
		ExpiresAt:  i.ExpiresAt(),
		AcceptedAt: i.AcceptedAt(),
		CreatedAt:  i.CreatedAt(),
		UpdatedAt:  i.UpdatedAt(),
	}
}

func InviteToDomain(model *models.InviteModel) (*invite.TeamInvite, error) {
	return invite.ReconstructTeamInvite(
		model.ID,
		model.SID,
		model.AgencyID,
		model.Email,
		authorization.ParseUserRole(model.Role),
		model.TokenHash,
		invite.Status(model.Status),
		model.InvitedBy,
		model.ExpiresAt,
		model.AcceptedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
