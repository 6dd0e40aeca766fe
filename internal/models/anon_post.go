package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Anonymous post kinds
const (
	PostKindConfession = "confession"
	PostKindCrush      = "crush"
	PostKindSpotted    = "spotted"
)

// Anonymous post statuses
const (
	PostStatusPending  = "pending"
	PostStatusApproved = "approved"
	PostStatusRejected = "rejected"
)

// AnonPost is an anonymously submitted confession, crush or spotted post
// (MongoDB). The body is stored already filtered; blocked submissions are
// rejected before this document is ever created.
type AnonPost struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kind      string             `json:"kind" bson:"kind"`
	Body      string             `json:"body" bson:"body"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

type SubmitAnonPostRequest struct {
	Kind string `json:"kind" validate:"required,oneof=confession crush spotted"`
	Body string `json:"body" validate:"required,min=2,max=2000"`
}
