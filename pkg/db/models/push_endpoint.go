package models

import (
	"time"

	"github.com/google/uuid"
)

// PushEndpoint is one browser/device push registration for a user. The
// endpoint URL plus the p256dh/auth keys are everything the Web Push
// protocol needs to deliver an encrypted payload.
type PushEndpoint struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_push_endpoints_user_endpoint"`
	Endpoint  string    `gorm:"type:text;not null;uniqueIndex:idx_push_endpoints_user_endpoint"`
	P256dh    string    `gorm:"column:p256dh;type:text;not null"`
	Auth      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
