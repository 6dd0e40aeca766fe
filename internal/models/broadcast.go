package models

import "time"

// Broadcast is an admin-authored announcement shown to every session until
// dismissed or expired.
type Broadcast struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Priority  int        `json:"priority" gorm:"default:0;index"`
	IsActive  bool       `json:"is_active" gorm:"default:true;index"`
	ExpiresAt *time.Time `json:"expires_at"` // nil means no expiry
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
}

// BroadcastRead marks that an anonymous session has seen/dismissed a broadcast.
// At most one row per (broadcast, session) pair, enforced by the unique index
// together with upsert semantics in the repository.
type BroadcastRead struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BroadcastID uint      `json:"broadcast_id" gorm:"not null;uniqueIndex:ux_broadcast_session,priority:1"`
	SessionID   string    `json:"session_id" gorm:"size:64;not null;uniqueIndex:ux_broadcast_session,priority:2"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateBroadcastRequest struct {
	Title     string     `json:"title" validate:"required,min=2,max=120"`
	Body      string     `json:"body" validate:"required,min=2,max=2000"`
	Priority  int        `json:"priority" validate:"min=0,max=10"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
