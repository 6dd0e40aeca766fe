package models

import "time"

// Lost & found report kinds
const (
	LostItemKindLost  = "lost"
	LostItemKindFound = "found"
)

// LostItem is a lost & found report filed by a registered user (PostgreSQL).
type LostItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ReporterID  uint      `json:"reporter_id" gorm:"index;not null"`
	Kind        string    `json:"kind" gorm:"size:5;index"` // lost, found
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Resolved    bool      `json:"resolved" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateLostItemRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=lost found"`
	Title       string `json:"title" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"required,min=2,max=2000"`
	Location    string `json:"location" validate:"max=120"`
}
