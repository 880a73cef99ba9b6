package usecases

import (
	"context"
	"errors"

	"purser/internal/domain/user"
	apperrors "purser/internal/shared/errors"
	"purser/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  *user.User
	Token string
}

// PasswordVerifier checks a plaintext credential against a stored hash.
type PasswordVerifier interface {
	Verify(hash, password string) bool
}

// TokenIssuer mints the session token embedded in the login response.
type TokenIssuer interface {
	Issue(u *user.User) (string, error)
}

type LoginUseCase struct {
	userRepo user.Repository
	verifier PasswordVerifier
	issuer   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		logger:   logger,
	}
}

// Execute authenticates by email and password. Unknown emails and wrong
// passwords return the same unauthenticated error.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, apperrors.NewInvalidArgumentError("email and password are required")
	}

	u, err := uc.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.NewUnauthenticatedError("invalid email or password")
		}
		uc.logger.Errorw("failed to look up user", "error", err)
		return nil, apperrors.NewInternalError("failed to look up user")
	}

	if !u.IsActive() {
		return nil, apperrors.NewPermissionDeniedError("account is disabled")
	}
	if !uc.verifier.Verify(u.PasswordHash(), cmd.Password) {
		return nil, apperrors.NewUnauthenticatedError("invalid email or password")
	}

	token, err := uc.issuer.Issue(u)
	if err != nil {
		uc.logger.Errorw("failed to issue token", "error", err, "user_sid", u.SID())
		return nil, apperrors.NewInternalError("failed to issue token")
	}

	uc.logger.Infow("user logged in", "user_sid", u.SID(), "agency_id", u.AgencyID())
	return &LoginResult{User: u, Token: token}, nil
}
