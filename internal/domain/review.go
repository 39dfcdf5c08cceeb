package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MealID    string             `bson:"meal_id,omitempty" json:"mealId,omitempty"`
	MealName  string             `bson:"meal_name" json:"mealName"`
	UserName  string             `bson:"user_name" json:"userName"`
	UserEmail string             `bson:"user_email" json:"userEmail"`
	UserID    string             `bson:"user_id,omitempty" json:"userId,omitempty"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ReviewFilter narrows and orders a review listing.
type ReviewFilter struct {
	MealID string
	Rating int
	SortBy string
}

const (
	ReviewSortRating = "rating"
	ReviewSortOldest = "oldest"
)
