package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/adilbekov/homecook-api/internal/queue"
	"github.com/adilbekov/homecook-api/internal/service"
	"go.uber.org/zap"
)

type OrderPlacedWorker struct {
	orderService *service.OrderService
	broker       queue.Broker
	logger       *zap.SugaredLogger
	ctx          context.Context
	cancel       context.CancelFunc
}

func NewOrderPlacedWorker(
	orderService *service.OrderService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderPlacedWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderPlacedWorker{
		orderService: orderService,
		broker:       broker,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *OrderPlacedWorker) Start() error {
	w.logger.Info("starting order placed worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderPlaced, w.handleMessage)
}

func (w *OrderPlacedWorker) Stop() {
	w.logger.Info("stopping order placed worker")
	w.cancel()
}

func (w *OrderPlacedWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.OrderPlacedMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	w.logger.Infow("processing order placed message", "order_id", msg.OrderID)

	if err := w.orderService.ProcessOrderPlaced(ctx, msg.OrderID); err != nil {
		w.logger.Errorw("failed to process order placed message", "order_id", msg.OrderID, "error", err)
		return err
	}

	return nil
}
