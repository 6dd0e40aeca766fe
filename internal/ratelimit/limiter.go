// Package ratelimit throttles anonymous senders to a fixed number of messages
// per rolling 24h window, keyed by client IP.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/campuswall/backend/internal/models"
)

const (
	// MessageLimit is the number of anonymous messages allowed per window.
	MessageLimit = 10
	// ResetWindow is the rolling window length. The reset point is relative
	// to each record's last reset, not a wall-clock boundary.
	ResetWindow = 24 * time.Hour
)

// ErrNotFound is returned by a Store when no record exists for an IP.
var ErrNotFound = errors.New("rate record not found")

// Store persists per-IP rate records.
type Store interface {
	Find(ctx context.Context, ip string) (*models.AnonymousRateRecord, error)
	Create(ctx context.Context, record *models.AnonymousRateRecord) error
	// ResetIfStale zeroes the counter of the record for ip, but only if its
	// last reset is at or before cutoff. The condition lives in the UPDATE so
	// two racing checks cannot both reset and then double-count.
	ResetIfStale(ctx context.Context, ip string, cutoff, now time.Time) (bool, error)
	Increment(ctx context.Context, ip string) error
}

// Status is the result of a limit check.
type Status struct {
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
	Limited   bool `json:"limited"`
}

// Limiter enforces the per-IP message limit on top of a Store.
type Limiter struct {
	store Store
	limit int
	win   time.Duration
	now   func() time.Time
}

// New creates a Limiter with the default limit and window.
func New(store Store) *Limiter {
	return &Limiter{store: store, limit: MessageLimit, win: ResetWindow, now: time.Now}
}

// Check reports the IP's current usage, resetting stale windows first. A
// fresh IP (no record yet) is not limited; the record is only created by the
// first Consume. On storage failure the returned status is limited, so
// callers that ignore the error still fail closed.
func (l *Limiter) Check(ctx context.Context, ip string) (Status, error) {
	record, err := l.store.Find(ctx, ip)
	if errors.Is(err, ErrNotFound) {
		return Status{Used: 0, Remaining: l.limit, Limited: false}, nil
	}
	if err != nil {
		return Status{Limited: true}, err
	}

	now := l.now()
	if now.Sub(record.LastReset) >= l.win {
		cutoff := now.Add(-l.win)
		if _, err := l.store.ResetIfStale(ctx, ip, cutoff, now); err != nil {
			return Status{Limited: true}, err
		}
		return Status{Used: 0, Remaining: l.limit, Limited: false}, nil
	}

	remaining := l.limit - record.Count
	if remaining < 0 {
		remaining = 0
	}
	return Status{Used: record.Count, Remaining: remaining, Limited: record.Count >= l.limit}, nil
}

// Consume records one accepted message for the IP. Call only after the
// message has passed moderation and been persisted.
func (l *Limiter) Consume(ctx context.Context, ip string) error {
	_, err := l.store.Find(ctx, ip)
	if errors.Is(err, ErrNotFound) {
		return l.store.Create(ctx, &models.AnonymousRateRecord{
			IP:        ip,
			Count:     1,
			LastReset: l.now(),
		})
	}
	if err != nil {
		return err
	}
	return l.store.Increment(ctx, ip)
}
