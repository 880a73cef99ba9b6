package usecases

import (
	"context"
	"errors"
	"time"

	"purser/internal/domain/invite"
	"purser/internal/domain/user"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/id"
	"purser/internal/shared/logger"
)

type AcceptInviteCommand struct {
	Token    string
	Name     string
	Password string
}

type AcceptInviteUseCase struct {
	inviteRepo invite.Repository
	userRepo   user.Repository
	hasher     PasswordHasher
	tx         Transactor
	logger     logger.Interface
}

func NewAcceptInviteUseCase(
	inviteRepo invite.Repository,
	userRepo user.Repository,
	hasher PasswordHasher,
	tx Transactor,
	logger logger.Interface,
) *AcceptInviteUseCase {
	return &AcceptInviteUseCase{
		inviteRepo: inviteRepo,
		userRepo:   userRepo,
		hasher:     hasher,
		tx:         tx,
		logger:     logger,
	}
}

// Execute redeems an invite token: the invite flips to accepted and the
// member account is created, both in one transaction. The token is looked up
// by its hash; the plaintext is never stored.
func (uc *AcceptInviteUseCase) Execute(ctx context.Context, cmd AcceptInviteCommand) (*user.User, error) {
	if cmd.Token == "" {
		return nil, apperrors.NewInvalidArgumentError("invite token is required")
	}
	if cmd.Password == "" {
		return nil, apperrors.NewInvalidArgumentError("password is required")
	}

	inv, err := uc.inviteRepo.FindByTokenHash(ctx, invite.HashToken(cmd.Token))
	if err != nil {
		if errors.Is(err, invite.ErrInviteNotFound) {
			return nil, apperrors.NewNotFoundError("invite not found")
		}
		uc.logger.Errorw("failed to look up invite", "error", err)
		return nil, apperrors.NewInternalError("failed to look up invite")
	}

	if err := inv.Accept(time.Now().UTC()); err != nil {
		switch {
		case errors.Is(err, invite.ErrInviteExpired):
			return nil, apperrors.NewFailedPreconditionError("invite has expired")
		case errors.Is(err, invite.ErrInviteRevoked):
			return nil, apperrors.NewFailedPreconditionError("invite has been revoked")
		case errors.Is(err, invite.ErrInviteAlreadyAccepted):
			return nil, apperrors.NewConflictError("invite has already been accepted")
		default:
			return nil, apperrors.NewInternalError(err.Error())
		}
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, apperrors.NewInternalError("failed to hash password")
	}

	userSID, err := id.NewUserID()
	if err != nil {
		uc.logger.Errorw("failed to generate user id", "error", err)
		return nil, apperrors.NewInternalError("failed to generate user id")
	}

	u, err := user.NewUser(userSID, inv.AgencyID(), inv.Email(), cmd.Name, hash, inv.Role())
	if err != nil {
		return nil, apperrors.NewInvalidArgumentError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, u); err != nil {
			return err
		}
		return uc.inviteRepo.Update(txCtx, inv)
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("an account with this email already exists")
		}
		uc.logger.Errorw("failed to accept invite", "error", err, "invite_sid", inv.SID())
		return nil, apperrors.NewInternalError("failed to accept invite")
	}

	uc.logger.Infow("invite accepted", "invite_sid", inv.SID(), "agency_id", inv.AgencyID(), "user_sid", u.SID())
	return u, nil
}
