package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/adilbekov/homecook-api/internal/cart"
	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/adilbekov/homecook-api/internal/kv"
	"github.com/adilbekov/homecook-api/internal/notify"
	"github.com/adilbekov/homecook-api/internal/queue"
	"github.com/adilbekov/homecook-api/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	orders map[primitive.ObjectID]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	order.ID = primitive.NewObjectID()
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) GetAll(ctx context.Context) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return repo.ErrNotFound
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return repo.ErrNotFound
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.orders[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeAuditRepo struct {
	audits []domain.OrderStatusAudit
}

func (r *fakeAuditRepo) Create(ctx context.Context, audit *domain.OrderStatusAudit) error {
	r.audits = append(r.audits, *audit)
	return nil
}

func (r *fakeAuditRepo) GetByOrderID(ctx context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error) {
	var audits []domain.OrderStatusAudit
	for _, a := range r.audits {
		if a.OrderID == orderID {
			audits = append(audits, a)
		}
	}
	return audits, nil
}

type published struct {
	queueName string
	message   []byte
}

type fakeBroker struct {
	published []published
}

func (b *fakeBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.published = append(b.published, published{queueName: queueName, message: message})
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) Close() error { return nil }

type checkoutFixture struct {
	service   *OrderService
	orderRepo *fakeOrderRepo
	broker    *fakeBroker
	cartStore *kv.MemoryStore
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	orderRepo := newFakeOrderRepo()
	broker := &fakeBroker{}
	cartStore := kv.NewMemoryStore()

	svc := NewOrderService(
		orderRepo,
		&fakeAuditRepo{},
		cartStore,
		broker,
		nil,
		zap.NewNop().Sugar(),
		0.05,
	)

	return &checkoutFixture{
		service:   svc,
		orderRepo: orderRepo,
		broker:    broker,
		cartStore: cartStore,
	}
}

func (f *checkoutFixture) seedCart(t *testing.T, cartID string) {
	t.Helper()

	ctx := context.Background()
	c, err := cart.Load(ctx, f.cartStore, cart.Key(cartID))
	require.NoError(t, err)

	require.NoError(t, c.AddItem(ctx, "Dal Tadka", 50))
	require.NoError(t, c.Increment(ctx, "Dal Tadka"))
	require.NoError(t, c.AddItem(ctx, "Jeera Rice", 30))
}

func validCheckoutRequest() CheckoutRequest {
	return CheckoutRequest{
		CustomerName:  "Asel",
		CustomerEmail: "asel@example.com",
		CustomerPhone: "7015550123",
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.service.Checkout(context.Background(), "empty", validCheckoutRequest(), nil)

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.True(t, IsValidationError(err))
	assert.Empty(t, f.orderRepo.orders)
}

func TestCheckoutMissingFields(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "c1")

	req := validCheckoutRequest()
	req.CustomerEmail = ""

	_, err := f.service.Checkout(context.Background(), "c1", req, nil)

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Empty(t, f.orderRepo.orders)

	// a failed checkout must not touch the cart
	c, loadErr := cart.Load(context.Background(), f.cartStore, cart.Key("c1"))
	require.NoError(t, loadErr)
	assert.Len(t, c.Lines(), 2)
}

func TestCheckoutInvalidEmail(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "c1")

	req := validCheckoutRequest()
	req.CustomerEmail = "not-an-email"

	_, err := f.service.Checkout(context.Background(), "c1", req, nil)

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCheckoutDeliveryRequiresAddress(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "c1")

	req := validCheckoutRequest()
	req.DeliveryOption = domain.DeliveryOptionDelivery

	_, err := f.service.Checkout(context.Background(), "c1", req, nil)

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCheckoutComputesTotalsAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "c1")

	collector := notify.NewCollector()

	order, err := f.service.Checkout(context.Background(), "c1", validCheckoutRequest(), collector)
	require.NoError(t, err)

	// 2x50 + 1x30 = 130, 5% tax
	assert.InDelta(t, 130.0, order.Subtotal, 0.001)
	assert.InDelta(t, 6.5, order.Tax, 0.001)
	assert.InDelta(t, 136.5, order.Total, 0.001)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.DeliveryOptionPickup, order.DeliveryOption)

	require.Len(t, f.broker.published, 1)
	assert.Equal(t, queue.QueueOrderPlaced, f.broker.published[0].queueName)

	var msg domain.OrderPlacedMessage
	require.NoError(t, json.Unmarshal(f.broker.published[0].message, &msg))
	assert.Equal(t, order.ID.Hex(), msg.OrderID)

	c, err := cart.Load(context.Background(), f.cartStore, cart.Key("c1"))
	require.NoError(t, err)
	assert.Empty(t, c.Lines())

	last := collector.Last()
	require.NotNil(t, last)
	assert.Equal(t, "Order placed successfully!", last.Text)
}

func TestRequestStatusChangePublishesOldStatus(t *testing.T) {
	f := newCheckoutFixture(t)

	order := &domain.Order{Status: domain.OrderStatusPending}
	require.NoError(t, f.orderRepo.Create(context.Background(), order))

	err := f.service.RequestStatusChange(context.Background(), order.ID.Hex(), "confirmed", "cook accepted", "admin_123")
	require.NoError(t, err)

	require.Len(t, f.broker.published, 1)
	assert.Equal(t, queue.QueueOrderStatus, f.broker.published[0].queueName)

	var event domain.OrderStatusEvent
	require.NoError(t, json.Unmarshal(f.broker.published[0].message, &event))
	assert.Equal(t, string(domain.OrderStatusPending), event.OldStatus)
	assert.Equal(t, "confirmed", event.NewStatus)
	assert.Equal(t, domain.EventOrderStatusChanged, event.EventType)
}

func TestRequestStatusChangeInvalidID(t *testing.T) {
	f := newCheckoutFixture(t)

	err := f.service.RequestStatusChange(context.Background(), "garbage", "confirmed", "", "admin_123")

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Empty(t, f.broker.published)
}

func TestRequestStatusChangeUnknownOrder(t *testing.T) {
	f := newCheckoutFixture(t)

	err := f.service.RequestStatusChange(context.Background(), primitive.NewObjectID().Hex(), "confirmed", "", "admin_123")

	require.Error(t, err)
	assert.True(t, errors.Is(err, repo.ErrNotFound))
}
