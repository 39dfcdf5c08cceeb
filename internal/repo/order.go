package repo

import (
	"context"

	"github.com/adilbekov/homecook-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	GetAll(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStatusAuditRepository interface {
	Create(ctx context.Context, audit *domain.OrderStatusAudit) error
	GetByOrderID(ctx context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error)
}
