package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is a message in the anonymous campus chat (MongoDB). The body is
// stored already filtered. The sender IP is only kept on the rate record, never
// on the message itself.
type ChatMessage struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Alias     string             `json:"alias" bson:"alias"`
	Body      string             `json:"body" bson:"body"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type SendChatMessageRequest struct {
	Alias string `json:"alias" validate:"required,min=2,max=30"`
	Body  string `json:"body" validate:"required,min=1,max=500"`
}
