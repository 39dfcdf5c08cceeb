package repo

import (
	"context"

	"github.com/adilbekov/homecook-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error)
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
