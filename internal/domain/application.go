package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LicenceStatus string

const (
	LicenceStatusYes        LicenceStatus = "yes"
	LicenceStatusNo         LicenceStatus = "no"
	LicenceStatusAssistance LicenceStatus = "assistance"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// HomeCookApplication is a request to join the marketplace as a cook.
type HomeCookApplication struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Location      string             `bson:"location" json:"location"`
	LicenceStatus LicenceStatus      `bson:"licence_status" json:"licenceStatus"`
	Status        ApplicationStatus  `bson:"status" json:"status"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
