package models

import "time"

// ItemRequest is an open "looking for" request in the marketplace
// (PostgreSQL). A request belongs either to a registered requester or to a
// guest identified only by email, never both.
type ItemRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RequesterID *uint     `json:"requester_id" gorm:"index"` // nil for guest requests
	GuestEmail  string    `json:"guest_email,omitempty"`
	CategoryID  uint      `json:"category_id" gorm:"index;not null"`
	Description string    `json:"description"`
	Open        bool      `json:"open" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasRequester reports whether the request belongs to a registered user.
func (r *ItemRequest) HasRequester() bool {
	return r.RequesterID != nil && *r.RequesterID != 0
}

type CreateItemRequestRequest struct {
	CategoryID  uint   `json:"category_id" validate:"required"`
	Description string `json:"description" validate:"required,min=2,max=2000"`
	GuestEmail  string `json:"guest_email,omitempty" validate:"omitempty,email"`
}
