package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one user's read/unread record for one announcement.
// Rows are created in bulk by the fan-out engine at announcement-creation
// time; only the owning user may flip the read flag.
type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	AnnouncementID uuid.UUID `gorm:"type:uuid;not null;index"`
	Read           bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
