package models

import "github.com/google/uuid"

// Subscription holds a user's notification opt-in flag. At most one row
// exists per user; it is created lazily on the first toggle or push
// registration and upserted afterwards.
type Subscription struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	NotifyEnabled bool      `gorm:"column:notify_enabled;not null;default:true"`
}
