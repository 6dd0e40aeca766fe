package models

import "time"

// Notification types. The enum is closed: every row carries one of these values.
const (
	NotificationMessage         = "MESSAGE"
	NotificationListingApproved = "LISTING_APPROVED"
	NotificationListingRejected = "LISTING_REJECTED"
	NotificationListingSold     = "LISTING_SOLD"
	NotificationSuggestionMatch = "SUGGESTION_MATCH"
	NotificationEscrowReleased  = "ESCROW_RELEASED"
	NotificationEscrowRefunded  = "ESCROW_REFUNDED"
	NotificationConfessionPending = "CONFESSION_PENDING"
	NotificationCrushPending      = "CRUSH_PENDING"
	NotificationSpottedPending    = "SPOTTED_PENDING"
)

// Notification represents an in-app notification (PostgreSQL).
// Each row has exactly one recipient; fan-out writes one row per recipient.
type Notification struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	RecipientID uint       `json:"recipient_id" gorm:"index;not null"`
	Type        string     `json:"type" gorm:"size:30;index"`
	Title       string     `json:"title"`
	Body        string     `json:"body,omitempty"`
	Link        string     `json:"link,omitempty"`
	ReadAt      *time.Time `json:"read_at" gorm:"index"` // nil until the recipient views it
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
}
