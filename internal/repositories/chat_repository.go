package repositories

import (
	"context"
	"time"

	"github.com/campuswall/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatRepository defines the interface for campus chat data operations
type ChatRepository interface {
	CreateMessage(ctx context.Context, message *models.ChatMessage) error
	GetRecentMessages(ctx context.Context, limit int64) ([]models.ChatMessage, error)
}

// MongoChatRepository implements ChatRepository for MongoDB
type MongoChatRepository struct {
	collection *mongo.Collection
}

// NewMongoChatRepository creates a new MongoChatRepository
func NewMongoChatRepository(db *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{collection: db.Collection("chat_messages")}
}

// CreateMessage stores a new chat message in MongoDB
func (r *MongoChatRepository) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// GetRecentMessages retrieves the most recent chat messages, newest first
func (r *MongoChatRepository) GetRecentMessages(ctx context.Context, limit int64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
