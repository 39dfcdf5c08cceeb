package repo

import (
	"context"
	"errors"

	"github.com/adilbekov/homecook-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by repositories when a document does not exist.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
