package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/campuswall/backend/internal/models"
	"gorm.io/gorm"
)

// GormStore implements Store on PostgreSQL. Rows are never deleted; a
// distinct IP leaves one row behind forever.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Find retrieves the rate record for an IP
func (s *GormStore) Find(ctx context.Context, ip string) (*models.AnonymousRateRecord, error) {
	var record models.AnonymousRateRecord
	err := s.db.WithContext(ctx).Where("ip = ?", ip).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a fresh rate record
func (s *GormStore) Create(ctx context.Context, record *models.AnonymousRateRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// ResetIfStale zeroes the counter in a single conditional UPDATE
func (s *GormStore) ResetIfStale(ctx context.Context, ip string, cutoff, now time.Time) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.AnonymousRateRecord{}).
		Where("ip = ? AND last_reset <= ?", ip, cutoff).
		Updates(map[string]interface{}{"count": 0, "last_reset": now})
	return result.RowsAffected > 0, result.Error
}

// Increment adds one accepted message to the IP's counter
func (s *GormStore) Increment(ctx context.Context, ip string) error {
	return s.db.WithContext(ctx).
		Model(&models.AnonymousRateRecord{}).
		Where("ip = ?", ip).
		Update("count", gorm.Expr("count + 1")).Error
}
