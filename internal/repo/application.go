package repo

import (
	"context"

	"github.com/adilbekov/homecook-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.HomeCookApplication) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.HomeCookApplication, error)
	GetAll(ctx context.Context) ([]domain.HomeCookApplication, error)
	Update(ctx context.Context, app *domain.HomeCookApplication) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
