package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	PasswordHash       string             `bson:"password_hash" json:"-"`
	Phone              string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location           string             `bson:"location,omitempty" json:"location,omitempty"`
	DietaryPreferences []string           `bson:"dietary_preferences,omitempty" json:"dietaryPreferences,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"createdAt"`
}

// PublicUser is the shape returned to clients after signup/login.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	}
}
