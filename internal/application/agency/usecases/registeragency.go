package usecases

import (
	"context"
	"errors"

	"purser/internal/domain/agency"
	"purser/internal/domain/user"
	"purser/internal/shared/authorization"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/id"
	"purser/internal/shared/logger"
)

type RegisterAgencyCommand struct {
	Name         string
	BillingEmail string
	ContactEmail string
	AdminName    string
	AdminEmail   string
	Password     string
}

type RegisterAgencyResult struct {
	Agency *agency.Agency
	Admin  *user.User
}

// PasswordHasher hashes the first admin's credential at signup.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Transactor runs a function within a database transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type RegisterAgencyUseCase struct {
	agencyRepo agency.Repository
	userRepo   user.Repository
	hasher     PasswordHasher
	tx         Transactor
	logger     logger.Interface
}

func NewRegisterAgencyUseCase(
	agencyRepo agency.Repository,
	userRepo user.Repository,
	hasher PasswordHasher,
	tx Transactor,
	logger logger.Interface,
) *RegisterAgencyUseCase {
	return &RegisterAgencyUseCase{
		agencyRepo: agencyRepo,
		userRepo:   userRepo,
		hasher:     hasher,
		tx:         tx,
		logger:     logger,
	}
}

// Execute signs up a new agency together with its first admin account. Both
// rows commit in one transaction; billing starts in the trial state with no
// provider customer.
func (uc *RegisterAgencyUseCase) Execute(ctx context.Context, cmd RegisterAgencyCommand) (*RegisterAgencyResult, error) {
	if cmd.Password == "" {
		return nil, apperrors.NewInvalidArgumentError("password is required")
	}

	agencySID, err := id.NewAgencyID()
	if err != nil {
		uc.logger.Errorw("failed to generate agency id", "error", err)
		return nil, apperrors.NewInternalError("failed to generate agency id")
	}

	ag, err := agency.NewAgency(agencySID, cmd.Name, cmd.BillingEmail, cmd.ContactEmail)
	if err != nil {
		return nil, apperrors.NewInvalidArgumentError(err.Error())
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

	var admin *user.User
	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.agencyRepo.Create(txCtx, ag); err != nil {
			return err
		}

		admin, err = user.NewUser(userSID, ag.ID(), cmd.AdminEmail, cmd.AdminName, hash, authorization.RoleAdmin)
		if err != nil {
			return err
		}
		return uc.userRepo.Create(txCtx, admin)
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("an account with this email already exists")
		}
		uc.logger.Errorw("failed to register agency", "error", err, "agency_name", cmd.Name)
		return nil, apperrors.NewInternalError("failed to register agency")
	}

	uc.logger.Infow("agency registered", "agency_sid", ag.SID(), "admin_sid", admin.SID())
	return &RegisterAgencyResult{Agency: ag, Admin: admin}, nil
}
