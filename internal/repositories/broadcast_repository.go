package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campuswall/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	activeBroadcastsKey = "broadcasts:active"
	activeBroadcastsTTL = time.Minute
)

// BroadcastRepository defines the interface for broadcast and read-tracking
// operations
type BroadcastRepository interface {
	CreateBroadcast(broadcast *models.Broadcast) error
	Deactivate(broadcastID uint) error
	GetActive(ctx context.Context) ([]models.Broadcast, error)
	GetActiveUnread(ctx context.Context, sessionID string) ([]models.Broadcast, error)
	UnreadCount(ctx context.Context, sessionID string) (int, error)
	MarkRead(broadcastID uint, sessionID string) error
}

// postgresBroadcastRepository keeps broadcasts in PostgreSQL and caches the
// active list in Redis, since the banner endpoint reads it on every page load.
type postgresBroadcastRepository struct {
	db    *gorm.DB
	cache *redis.Client // optional; nil disables caching
}

func NewPostgresBroadcastRepository(db *gorm.DB, cache *redis.Client) BroadcastRepository {
	return &postgresBroadcastRepository{db: db, cache: cache}
}

func (r *postgresBroadcastRepository) CreateBroadcast(broadcast *models.Broadcast) error {
	if err := r.db.Create(broadcast).Error; err != nil {
		return err
	}
	r.invalidateCache()
	return nil
}

func (r *postgresBroadcastRepository) Deactivate(broadcastID uint) error {
	err := r.db.Model(&models.Broadcast{}).
		Where("id = ?", broadcastID).
		Update("is_active", false).Error
	if err != nil {
		return err
	}
	r.invalidateCache()
	return nil
}

// GetActive returns active, non-expired broadcasts ordered by priority then
// recency. Cache errors fall through to PostgreSQL.
func (r *postgresBroadcastRepository) GetActive(ctx context.Context) ([]models.Broadcast, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, activeBroadcastsKey).Bytes(); err == nil {
			var broadcasts []models.Broadcast
			if err := json.Unmarshal(cached, &broadcasts); err == nil {
				return broadcasts, nil
			}
		}
	}

	var broadcasts []models.Broadcast
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND (expires_at IS NULL OR expires_at > ?)", true, time.Now()).
		Order("priority DESC, created_at DESC").
		Find(&broadcasts).Error
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if payload, err := json.Marshal(broadcasts); err == nil {
			r.cache.Set(ctx, activeBroadcastsKey, payload, activeBroadcastsTTL)
		}
	}
	return broadcasts, nil
}

// GetActiveUnread filters the active list down to broadcasts the session has
// not yet dismissed.
func (r *postgresBroadcastRepository) GetActiveUnread(ctx context.Context, sessionID string) ([]models.Broadcast, error) {
	active, err := r.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	seen, err := r.readIDs(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	unread := make([]models.Broadcast, 0, len(active))
	for _, b := range active {
		if !seen[b.ID] {
			unread = append(unread, b)
		}
	}
	return unread, nil
}

func (r *postgresBroadcastRepository) UnreadCount(ctx context.Context, sessionID string) (int, error) {
	unread, err := r.GetActiveUnread(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

// MarkRead records the dismissal once; repeated calls hit the composite
// unique index and are dropped by ON CONFLICT DO NOTHING.
func (r *postgresBroadcastRepository) MarkRead(broadcastID uint, sessionID string) error {
	read := models.BroadcastRead{
		BroadcastID: broadcastID,
		SessionID:   sessionID,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&read).Error
}

func (r *postgresBroadcastRepository) readIDs(ctx context.Context, sessionID string) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.BroadcastRead{}).
		Where("session_id = ?", sessionID).
		Pluck("broadcast_id", &ids).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}

func (r *postgresBroadcastRepository) invalidateCache() {
	if r.cache != nil {
		r.cache.Del(context.Background(), activeBroadcastsKey)
	}
}
