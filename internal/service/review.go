package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/adilbekov/homecook-api/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrNotOwner is returned when a user tries to edit or delete a review
// they did not write.
var ErrNotOwner = errors.New("review does not belong to user")

type ReviewService struct {
	reviewRepo repo.ReviewRepository
	logger     *zap.SugaredLogger
}

func NewReviewService(reviewRepo repo.ReviewRepository, logger *zap.SugaredLogger) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		logger:     logger,
	}
}

// List returns reviews matching the filter. Store failures degrade to an
// empty list: callers render "no reviews" rather than an error state.
func (s *ReviewService) List(ctx context.Context, filter domain.ReviewFilter) []domain.Review {
	reviews, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		s.logger.Errorw("failed to load reviews", "error", err)
		return []domain.Review{}
	}

	return reviews
}

func (s *ReviewService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (s *ReviewService) Create(ctx context.Context, review *domain.Review) error {
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Infow("review created", "review_id", review.ID.Hex(), "meal", review.MealName, "rating", review.Rating)

	return nil
}

// ReviewChanges are the editable fields of a review.
type ReviewChanges struct {
	MealID    string
	MealName  string
	UserName  string
	UserEmail string
	Rating    int
	Comment   string
}

// Update applies changes to a review after verifying the acting user owns
// it.
func (s *ReviewService) Update(ctx context.Context, id primitive.ObjectID, actorUserID string, changes ReviewChanges) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if review.UserID == "" || review.UserID != actorUserID {
		return nil, ErrNotOwner
	}

	review.MealID = changes.MealID
	review.MealName = changes.MealName
	review.UserName = changes.UserName
	review.UserEmail = changes.UserEmail
	review.Rating = changes.Rating
	review.Comment = changes.Comment

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.logger.Infow("review updated", "review_id", id.Hex(), "user_id", actorUserID)

	return review, nil
}

// Delete removes a review after verifying the acting user owns it.
func (s *ReviewService) Delete(ctx context.Context, id primitive.ObjectID, actorUserID string) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if review.UserID == "" || review.UserID != actorUserID {
		return ErrNotOwner
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.logger.Infow("review deleted", "review_id", id.Hex(), "user_id", actorUserID)

	return nil
}
