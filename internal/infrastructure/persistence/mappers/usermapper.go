package mappers

import (
	"purser/internal/domain/user"
	"purser/internal/infrastructure/persistence/models"
	"purser/internal/shared/authorization"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		SID:          u.SID(),
		AgencyID:     u.AgencyID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Active:       u.IsActive(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func UserToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.SID,
		model.AgencyID,
		model.Email,
		model.Name,
		model.PasswordHash,
		authorization.ParseUserRole(model.Role),
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
