package repo

import (
	"context"

	"github.com/adilbekov/homecook-api/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, submission *domain.ContactSubmission) error
	GetAll(ctx context.Context) ([]domain.ContactSubmission, error)
}
