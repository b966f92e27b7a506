package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user reply attached to an announcement.
type Comment struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AnnouncementID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null"`
	Body           string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
