package service

import (
	"context"
	"errors"
	"testing"

	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/adilbekov/homecook-api/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeReviewRepo struct {
	reviews map[primitive.ObjectID]*domain.Review
	listErr error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[primitive.ObjectID]*domain.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	review.ID = primitive.NewObjectID()
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	reviews := make([]domain.Review, 0, len(r.reviews))
	for _, review := range r.reviews {
		reviews = append(reviews, *review)
	}
	return reviews, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return repo.ErrNotFound
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.reviews[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func seedReview(t *testing.T, repo *fakeReviewRepo, userID string) *domain.Review {
	t.Helper()

	review := &domain.Review{
		MealName: "Butter Chicken",
		UserName: "Asel",
		UserID:   userID,
		Rating:   4,
		Comment:  "Rich and creamy",
	}
	require.NoError(t, repo.Create(context.Background(), review))

	return review
}

func TestUpdateReviewByOwner(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	svc := NewReviewService(reviewRepo, zap.NewNop().Sugar())
	review := seedReview(t, reviewRepo, "user-1")

	changes := ReviewChanges{
		MealName: "Butter Chicken",
		UserName: "Asel",
		Rating:   5,
		Comment:  "Even better reheated",
	}

	updated, err := svc.Update(context.Background(), review.ID, "user-1", changes)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Even better reheated", updated.Comment)
}

func TestUpdateReviewByNonOwner(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	svc := NewReviewService(reviewRepo, zap.NewNop().Sugar())
	review := seedReview(t, reviewRepo, "user-1")

	_, err := svc.Update(context.Background(), review.ID, "user-2", ReviewChanges{Rating: 1})

	require.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, 4, reviewRepo.reviews[review.ID].Rating)
}

func TestUpdateReviewWithoutRecordedOwner(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	svc := NewReviewService(reviewRepo, zap.NewNop().Sugar())
	review := seedReview(t, reviewRepo, "")

	// legacy reviews without an owner are never editable
	_, err := svc.Update(context.Background(), review.ID, "", ReviewChanges{Rating: 1})

	require.ErrorIs(t, err, ErrNotOwner)
}

func TestDeleteReviewByNonOwner(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	svc := NewReviewService(reviewRepo, zap.NewNop().Sugar())
	review := seedReview(t, reviewRepo, "user-1")

	err := svc.Delete(context.Background(), review.ID, "user-2")

	require.ErrorIs(t, err, ErrNotOwner)
	assert.Contains(t, reviewRepo.reviews, review.ID)
}

func TestDeleteReviewByOwner(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	svc := NewReviewService(reviewRepo, zap.NewNop().Sugar())
	review := seedReview(t, reviewRepo, "user-1")

	require.NoError(t, svc.Delete(context.Background(), review.ID, "user-1"))
	assert.NotContains(t, reviewRepo.reviews, review.ID)
}

func TestListDegradesToEmptyOnStoreFailure(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	reviewRepo.listErr = errors.New("connection reset")
	svc := NewReviewService(reviewRepo, zap.NewNop().Sugar())

	reviews := svc.List(context.Background(), domain.ReviewFilter{})

	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}
