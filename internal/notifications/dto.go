package notifications

import (
	"time"

	"github.com/google/uuid"
)

// NotificationDTO is one ledger entry joined with its announcement context.
type NotificationDTO struct {
	ID             uuid.UUID `json:"id" gorm:"column:id"`
	AnnouncementID uuid.UUID `json:"announcementId" gorm:"column:announcement_id"`
	Title          string    `json:"title" gorm:"column:title"`
	AuthorName     string    `json:"authorName" gorm:"column:author_name"`
	Read           bool      `json:"read" gorm:"column:read"`
	CreatedAt      time.Time `json:"createdAt" gorm:"column:created_at"`
}

// ListResult is the notifications feed response shape.
type ListResult struct {
	Notifications []NotificationDTO `json:"notifications"`
	UnreadCount   int64             `json:"unreadCount"`
}
