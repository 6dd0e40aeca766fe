package models

import "time"

// Listing statuses
const (
	ListingStatusPending  = "pending"
	ListingStatusActive   = "active"
	ListingStatusSold     = "sold"
	ListingStatusRejected = "rejected"
)

// Listing is a marketplace item offered by a registered user (PostgreSQL).
// New listings start pending and become active after admin approval.
type Listing struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SellerID    uint      `json:"seller_id" gorm:"index;not null"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	CategoryID  uint      `json:"category_id" gorm:"index"`
	Status      string    `json:"status" gorm:"size:10;default:pending;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateListingRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"required,min=2,max=4000"`
	PriceCents  int64  `json:"price_cents" validate:"min=0"`
	CategoryID  uint   `json:"category_id" validate:"required"`
}
