package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/adilbekov/homecook-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContactRepository struct {
	collection *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{
		collection: db.Collection("contact_submissions"),
	}
}

func (r *ContactRepository) Create(ctx context.Context, submission *domain.ContactSubmission) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if submission.ID.IsZero() {
		submission.ID = primitive.NewObjectID()
	}
	submission.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, submission)
	if err != nil {
		return fmt.Errorf("failed to create contact submission: %w", err)
	}

	return nil
}

func (r *ContactRepository) GetAll(ctx context.Context) ([]domain.ContactSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact submissions: %w", err)
	}
	defer cursor.Close(ctx)

	submissions := []domain.ContactSubmission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("failed to decode contact submissions: %w", err)
	}

	return submissions, nil
}
