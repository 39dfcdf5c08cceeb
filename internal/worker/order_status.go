package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/adilbekov/homecook-api/internal/notify"
	"github.com/adilbekov/homecook-api/internal/queue"
	"github.com/adilbekov/homecook-api/internal/service"
	"go.uber.org/zap"
)

type OrderStatusWorker struct {
	orderService *service.OrderService
	broker       queue.Broker
	notifier     notify.Notifier
	logger       *zap.SugaredLogger
	ctx          context.Context
	cancel       context.CancelFunc
}

func NewOrderStatusWorker(
	orderService *service.OrderService,
	broker queue.Broker,
	notifier notify.Notifier,
	logger *zap.SugaredLogger,
) *OrderStatusWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderStatusWorker{
		orderService: orderService,
		broker:       broker,
		notifier:     notifier,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *OrderStatusWorker) Start() error {
	w.logger.Info("starting order status worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderStatus, w.handleMessage)
}

func (w *OrderStatusWorker) Stop() {
	w.logger.Info("stopping order status worker")
	w.cancel()
}

func (w *OrderStatusWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.OrderStatusEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	w.logger.Infow("processing order status event", "order_id", event.OrderID, "event_type", event.EventType)

	if err := w.orderService.ProcessStatusEvent(ctx, event); err != nil {
		w.logger.Errorw("failed to process order status event", "order_id", event.OrderID, "error", err)
		return err
	}

	if w.notifier != nil {
		w.notifier.Notify(fmt.Sprintf("Order %s is now %s", event.OrderID, event.NewStatus), notify.SeverityInfo)
	}

	return nil
}
