package jobs_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(_ context.Context, _ *order.Order) error {
	panic("not implemented in mock")
}

func (m *MockOrderRepository) Update(_ context.Context, _ *order.Order) error {
	panic("not implemented in mock")
}

func (m *MockOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	panic("not implemented in mock")
}

func (m *MockOrderRepository) GetForUpdate(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	panic("not implemented in mock")
}

func (m *MockOrderRepository) AddHistory(_ context.Context, _ order.HistoryEntry) error {
	panic("not implemented in mock")
}

func (m *MockOrderRepository) GetAllAnonymousByPhone(_ context.Context, _ string) ([]*order.Order, error) {
	panic("not implemented in mock")
}

func (m *MockOrderRepository) GetAllCreatedBefore(ctx context.Context, before time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type RecordingBroadcaster struct {
	broadcasted []kernel.UUID
	failFor     *kernel.UUID
}

func (b *RecordingBroadcaster) Broadcast(_ context.Context, orderID kernel.UUID) error {
	if b.failFor != nil && b.failFor.IsEqual(orderID) {
		return errors.New("contractor directory unavailable")
	}
	b.broadcasted = append(b.broadcasted, orderID)
	return nil
}

func staleOrder(t *testing.T) *order.Order {
	t.Helper()

	contact, err := catalog.NewContact(kernel.NewUUID(), "Oleg", "+79990003344")
	require.NoError(t, err)
	address, err := catalog.NewAddress(kernel.NewUUID(), "Mira 5", "Tver", "Tver Oblast")
	require.NoError(t, err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), nil, &contact, nil, address, "", false, false,
		time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return aggregate
}

func TestOrderRebroadcastJob_RunOnce(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("re-announces every stale order", func(t *testing.T) {
		first := staleOrder(t)
		second := staleOrder(t)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("GetAllCreatedBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{first, second}, nil).Once()

		broadcaster := &RecordingBroadcaster{}
		job := jobs.NewOrderRebroadcastJob(orderRepo, broadcaster, 30*time.Minute, logger)

		require.NoError(t, job.RunOnce(ctx))
		assert.Equal(t, []kernel.UUID{first.ID(), second.ID()}, broadcaster.broadcasted)
		orderRepo.AssertExpectations(t)
	})

	t.Run("one failed broadcast does not stop the sweep", func(t *testing.T) {
		first := staleOrder(t)
		second := staleOrder(t)
		firstID := first.ID()

		orderRepo := new(MockOrderRepository)
		orderRepo.On("GetAllCreatedBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{first, second}, nil).Once()

		broadcaster := &RecordingBroadcaster{failFor: &firstID}
		job := jobs.NewOrderRebroadcastJob(orderRepo, broadcaster, 30*time.Minute, logger)

		require.NoError(t, job.RunOnce(ctx))
		assert.Equal(t, []kernel.UUID{second.ID()}, broadcaster.broadcasted)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		orderRepo.On("GetAllCreatedBefore", ctx, mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("connection refused")).Once()

		job := jobs.NewOrderRebroadcastJob(orderRepo, &RecordingBroadcaster{}, 30*time.Minute, logger)

		require.Error(t, job.RunOnce(ctx))
	})
}
