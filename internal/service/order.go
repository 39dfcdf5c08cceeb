package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adilbekov/homecook-api/internal/cart"
	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/adilbekov/homecook-api/internal/kv"
	"github.com/adilbekov/homecook-api/internal/notify"
	"github.com/adilbekov/homecook-api/internal/queue"
	"github.com/adilbekov/homecook-api/internal/repo"
	"github.com/adilbekov/homecook-api/internal/store/mongo"
	"github.com/adilbekov/homecook-api/internal/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ValidationError marks failures that should surface as a specific message
// to the user with nothing persisted.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

var ErrEmptyCart = ValidationError("your cart is empty")

type OrderService struct {
	orderRepo repo.OrderRepository
	auditRepo repo.OrderStatusAuditRepository
	cartStore kv.Store
	broker    queue.Broker
	storage   *mongo.Storage
	logger    *zap.SugaredLogger
	taxRate   float64
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	auditRepo repo.OrderStatusAuditRepository,
	cartStore kv.Store,
	broker queue.Broker,
	storage *mongo.Storage,
	logger *zap.SugaredLogger,
	taxRate float64,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		auditRepo: auditRepo,
		cartStore: cartStore,
		broker:    broker,
		storage:   storage,
		logger:    logger,
		taxRate:   taxRate,
	}
}

func (s *OrderService) TaxRate() float64 {
	return s.taxRate
}

// CreateOrder persists an order and queues the order-placed event. A
// publish failure does not undo the order; it is logged and the audit
// trail simply starts later.
func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	message := domain.OrderPlacedMessage{OrderID: order.ID.Hex()}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderPlaced, messageBytes); err != nil {
		s.logger.Errorw("failed to publish order placed event", "order_id", order.ID.Hex(), "error", err)
	} else {
		s.logger.Infow("order placed", "order_id", order.ID.Hex(), "total", order.Total)
	}

	return nil
}

// CheckoutRequest carries the customer details collected on the checkout
// page.
type CheckoutRequest struct {
	DeliveryOption  string
	DeliveryAddress string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
}

// Checkout turns the cart identified by cartID into a persisted order:
// validates customer details, computes subtotal/tax/total server-side,
// creates the order and clears the cart.
func (s *OrderService) Checkout(ctx context.Context, cartID string, req CheckoutRequest, notifier notify.Notifier) (*domain.Order, error) {
	c, err := cart.Load(ctx, s.cartStore, cart.Key(cartID), cart.WithTaxRate(s.taxRate), cart.WithNotifier(notifier))
	if err != nil {
		return nil, err
	}

	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if req.CustomerName == "" || req.CustomerEmail == "" || req.CustomerPhone == "" {
		return nil, ValidationError("please fill in all required fields")
	}
	if !validate.Email(req.CustomerEmail) {
		return nil, ValidationError("invalid email address")
	}
	if !validate.Phone(req.CustomerPhone) {
		return nil, ValidationError("invalid phone number")
	}

	deliveryOption := req.DeliveryOption
	if deliveryOption == "" {
		deliveryOption = domain.DeliveryOptionPickup
	}

	deliveryAddress := ""
	if deliveryOption == domain.DeliveryOptionDelivery {
		if req.DeliveryAddress == "" {
			return nil, ValidationError("please enter delivery address")
		}
		deliveryAddress = req.DeliveryAddress
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Qty,
		})
	}

	order := &domain.Order{
		Items:           items,
		Subtotal:        c.Subtotal(),
		Tax:             c.Tax(),
		Total:           c.Total(),
		DeliveryOption:  deliveryOption,
		DeliveryAddress: deliveryAddress,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Status:          domain.OrderStatusPending,
	}

	if err := s.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := c.Clear(ctx); err != nil {
		s.logger.Errorw("failed to clear cart after checkout", "cart_id", cartID, "error", err)
	}

	if notifier != nil {
		notifier.Notify("Order placed successfully!", notify.SeveritySuccess)
	}

	return order, nil
}

// RequestStatusChange queues a status transition; the order status worker
// applies it and writes the audit record.
func (s *OrderService) RequestStatusChange(ctx context.Context, orderID, newStatus, reason, userID string) error {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return ValidationError("invalid order id")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find order: %w", err)
	}

	event := domain.OrderStatusEvent{
		EventType: domain.EventOrderStatusChanged,
		OrderID:   orderID,
		OldStatus: string(order.Status),
		NewStatus: newStatus,
		Reason:    reason,
		UserID:    userID,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderStatus, eventBytes); err != nil {
		s.logger.Errorw("failed to publish status change event", "order_id", orderID, "error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	s.logger.Infow("order status change queued", "order_id", orderID, "old_status", order.Status, "new_status", newStatus)

	return nil
}

// ProcessStatusEvent applies a queued status transition and records it in
// the audit trail, atomically.
func (s *OrderService) ProcessStatusEvent(ctx context.Context, event domain.OrderStatusEvent) error {
	id, err := primitive.ObjectIDFromHex(event.OrderID)
	if err != nil {
		return fmt.Errorf("invalid order id: %w", err)
	}

	if !domain.ValidOrderStatus(event.NewStatus) {
		return fmt.Errorf("unknown order status %q", event.NewStatus)
	}

	session, err := s.storage.StartSession()
	if err != nil {
		s.logger.Errorw("failed to start session", "order_id", event.OrderID, "error", err)
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	if err := session.StartTransaction(); err != nil {
		s.logger.Errorw("failed to start transaction", "order_id", event.OrderID, "error", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, domain.OrderStatus(event.NewStatus)); err != nil {
		s.logger.Errorw("failed to update order status", "order_id", event.OrderID, "error", err)
		session.AbortTransaction(ctx)
		return fmt.Errorf("failed to update order status: %w", err)
	}

	audit := &domain.OrderStatusAudit{
		OrderID:   event.OrderID,
		EventType: event.EventType,
		OldStatus: event.OldStatus,
		NewStatus: event.NewStatus,
		Reason:    event.Reason,
		UserID:    event.UserID,
		Timestamp: event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create audit record", "order_id", event.OrderID, "error", err)
		session.AbortTransaction(ctx)
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	if err := session.CommitTransaction(ctx); err != nil {
		s.logger.Errorw("failed to commit transaction", "order_id", event.OrderID, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Infow("order status updated", "order_id", event.OrderID, "new_status", event.NewStatus)

	return nil
}

// ProcessOrderPlaced seeds the audit trail for a freshly placed order.
func (s *OrderService) ProcessOrderPlaced(ctx context.Context, orderID string) error {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return fmt.Errorf("invalid order id: %w", err)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}

	audit := &domain.OrderStatusAudit{
		OrderID:   orderID,
		EventType: domain.EventOrderPlaced,
		NewStatus: string(order.Status),
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	s.logger.Infow("order placed audit recorded", "order_id", orderID, "status", order.Status)

	return nil
}

func (s *OrderService) GetOrderAudit(ctx context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error) {
	audits, err := s.auditRepo.GetByOrderID(ctx, orderID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get order audit: %w", err)
	}

	return audits, nil
}

// IsValidationError reports whether err should be shown to the user as a
// request problem rather than a server fault.
func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
