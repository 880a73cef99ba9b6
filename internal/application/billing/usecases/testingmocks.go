package usecases

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"purser/internal/domain/agency"
	"purser/internal/shared/logger"
)

func newTestLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
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

type mockEventStore struct {
	mock.Mock
}

func (m *mockEventStore) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	args := m.Called(ctx, eventID, eventType)
	return args.Bool(0), args.Error(1)
}

type mockBillingGateway struct {
	mock.Mock
}

func (m *mockBillingGateway) CreateCustomer(ctx context.Context, name, email, agencySID string) (string, error) {
	args := m.Called(ctx, name, email, agencySID)
	return args.String(0), args.Error(1)
}

func (m *mockBillingGateway) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutSession), args.Error(1)
}

func (m *mockBillingGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	args := m.Called(ctx, customerID, returnURL)
	return args.String(0), args.Error(1)
}

// passthroughTx runs the function directly without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
