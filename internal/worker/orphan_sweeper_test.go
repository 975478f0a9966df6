package worker_test

import (
	"context"
	"testing"
	"time"

	"academy/internal/models"
	"academy/internal/repositories"
	"academy/internal/worker"
	"academy/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderEvent(routingKey string, payload interface{}) error {
	return m.Called(routingKey, payload).Error(0)
}

func seed(t *testing.T, repo *repositories.MockOrderRepository, age time.Duration, pi string, status models.OrderStatus) *models.Order {
	t.Helper()
	order := &models.Order{
		CourseID:  "c1",
		Amount:    29700,
		Currency:  "USD",
		Status:    status,
		CreatedAt: time.Now().Add(-age),
	}
	if pi != "" {
		order.PaymentIntentID = &pi
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestOrphanSweeper_SweepOnce(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockOrderRepository()

	orphan := seed(t, repo, 2*time.Hour, "", models.OrderPending)
	fresh := seed(t, repo, time.Minute, "", models.OrderPending)
	attached := seed(t, repo, 2*time.Hour, "pi_1", models.OrderPending)
	done := seed(t, repo, 2*time.Hour, "", models.OrderCompleted)

	publisher := new(MockPublisher)
	publisher.On("PublishOrderEvent", rabbitmq.RoutingOrderFailed, mock.MatchedBy(func(e rabbitmq.OrderEvent) bool {
		return e.OrderID == orphan.ID && e.Status == "FAILED"
	})).Return(nil).Once()

	sweeper := worker.NewOrphanSweeper(repo, publisher, time.Minute, time.Hour)
	n, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	publisher.AssertExpectations(t)

	expect := map[string]models.OrderStatus{
		orphan.ID:   models.OrderFailed,
		fresh.ID:    models.OrderPending,
		attached.ID: models.OrderPending,
		done.ID:     models.OrderCompleted,
	}
	for id, status := range expect {
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status, id)
	}

	// Nothing left to sweep.
	n, err = sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOrphanSweeper_RunStopsOnCancel(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	orphan := seed(t, repo, 2*time.Hour, "", models.OrderPending)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sweeper := worker.NewOrphanSweeper(repo, nil, 10*time.Millisecond, time.Hour)
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		got, err := repo.GetByID(context.Background(), orphan.ID)
		return err == nil && got.Status == models.OrderFailed
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestOrphanSweeper_RunWithZeroIntervalReturns(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	orphan := seed(t, repo, 2*time.Hour, "", models.OrderPending)

	done := make(chan struct{})
	go func() {
		worker.NewOrphanSweeper(repo, nil, 0, time.Hour).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper with zero interval did not return")
	}

	got, err := repo.GetByID(context.Background(), orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, got.Status)
}
