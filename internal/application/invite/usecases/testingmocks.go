package usecases

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"purser/internal/domain/agency"
	"purser/internal/domain/invite"
	"purser/internal/domain/user"
	"purser/internal/shared/logger"
)

func newTestLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type mockInviteRepo struct {
	mock.Mock
}

func (m *mockInviteRepo) Create(ctx context.Context, inv *invite.TeamInvite) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *mockInviteRepo) Update(ctx context.Context, inv *invite.TeamInvite) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *mockInviteRepo) FindBySID(ctx context.Context, sid string) (*invite.TeamInvite, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invite.TeamInvite), args.Error(1)
}

func (m *mockInviteRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*invite.TeamInvite, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invite.TeamInvite), args.Error(1)
}

func (m *mockInviteRepo) FindPendingByEmail(ctx context.Context, agencyID uint, email string) (*invite.TeamInvite, error) {
	args := m.Called(ctx, agencyID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invite.TeamInvite), args.Error(1)
}

func (m *mockInviteRepo) ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*invite.TeamInvite, int64, error) {
	args := m.Called(ctx, agencyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*invite.TeamInvite), args.Get(1).(int64), args.Error(2)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) FindBySID(ctx context.Context, sid string) (*user.User, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) ListByAgency(ctx context.Context, agencyID uint, offset, limit int) ([]*user.User, int64, error) {
	args := m.Called(ctx, agencyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*user.User), args.Get(1).(int64), args.Error(2)
}

type mockAgencyRepo struct {
	mock.Mock
}

func (m *mockAgencyRepo) Create(ctx context.Context, a *agency.Agency) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAgencyRepo) Update(ctx context.Context, a *agency.Agency) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAgencyRepo) FindByID(ctx context.Context, id uint) (*agency.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agency.Agency), args.Error(1)
}

func (m *mockAgencyRepo) FindBySID(ctx context.Context, sid string) (*agency.Agency, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agency.Agency), args.Error(1)
}

func (m *mockAgencyRepo) FindByStripeCustomerID(ctx context.Context, customerID string) (*agency.Agency, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agency.Agency), args.Error(1)
}

func (m *mockAgencyRepo) List(ctx context.Context, offset, limit int) ([]*agency.Agency, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*agency.Agency), args.Get(1).(int64), args.Error(2)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendInvite(ctx context.Context, email, agencyName, role, token string, expiresAt time.Time) error {
	args := m.Called(ctx, email, agencyName, role, token, expiresAt)
	return args.Error(0)
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// passthroughTx runs the function directly without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
