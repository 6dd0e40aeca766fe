package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/campuswall/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnonPostRepository defines the interface for anonymous post data operations
type AnonPostRepository interface {
	CreatePost(ctx context.Context, post *models.AnonPost) error
	GetPostByID(ctx context.Context, id string) (*models.AnonPost, error)
	GetApproved(ctx context.Context, kind string, skip, limit int64) ([]models.AnonPost, error)
	GetPending(ctx context.Context) ([]models.AnonPost, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

// MongoAnonPostRepository implements AnonPostRepository for MongoDB
type MongoAnonPostRepository struct {
	collection *mongo.Collection
}

// NewMongoAnonPostRepository creates a new MongoAnonPostRepository
func NewMongoAnonPostRepository(db *mongo.Database) *MongoAnonPostRepository {
	return &MongoAnonPostRepository{collection: db.Collection("anon_posts")}
}

// CreatePost creates a new anonymous post in MongoDB
func (r *MongoAnonPostRepository) CreatePost(ctx context.Context, post *models.AnonPost) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves an anonymous post by ID from MongoDB
func (r *MongoAnonPostRepository) GetPostByID(ctx context.Context, id string) (*models.AnonPost, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.AnonPost
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// GetApproved retrieves approved posts, optionally filtered by kind, newest first
func (r *MongoAnonPostRepository) GetApproved(ctx context.Context, kind string, skip, limit int64) ([]models.AnonPost, error) {
	filter := bson.M{"status": models.PostStatusApproved}
	if kind != "" {
		filter["kind"] = kind
	}

	var posts []models.AnonPost
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPending retrieves posts awaiting admin review, oldest first
func (r *MongoAnonPostRepository) GetPending(ctx context.Context) ([]models.AnonPost, error) {
	var posts []models.AnonPost
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": models.PostStatusPending}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateStatus sets a post's moderation status
func (r *MongoAnonPostRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("post not found")
	}
	return nil
}
