package models

import "time"

// AnonymousRateRecord tracks how many anonymous messages an IP has sent in the
// current rolling 24h window. One row per IP, created on the first message and
// reset in place when the window elapses. Rows are never deleted.
type AnonymousRateRecord struct {
	IP        string    `json:"ip" gorm:"primaryKey;size:45"` // fits IPv6 textual form
	Count     int       `json:"count" gorm:"default:0"`
	LastReset time.Time `json:"last_reset"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for AnonymousRateRecord.
func (AnonymousRateRecord) TableName() string {
	return "anonymous_rate_records"
}
