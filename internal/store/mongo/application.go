package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/adilbekov/homecook-api/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ApplicationRepository struct {
	collection *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{
		collection: db.Collection("homecook_applications"),
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.HomeCookApplication) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if app.ID.IsZero() {
		app.ID = primitive.NewObjectID()
	}
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, app)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.HomeCookApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var app domain.HomeCookApplication
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &app, nil
}

func (r *ApplicationRepository) GetAll(ctx context.Context) ([]domain.HomeCookApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer cursor.Close(ctx)

	apps := []domain.HomeCookApplication{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}

	return apps, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, app *domain.HomeCookApplication) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	app.UpdatedAt = time.Now()

	filter := bson.M{"_id": app.ID}
	update := bson.M{
		"$set": app,
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
