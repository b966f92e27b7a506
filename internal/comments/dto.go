package comments

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest is the payload for posting a comment.
type CreateRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

// CommentDTO is one comment joined with its author's name.
type CommentDTO struct {
	ID             uuid.UUID `json:"id" gorm:"column:id"`
	AnnouncementID uuid.UUID `json:"announcementId" gorm:"column:announcement_id"`
	UserID         uuid.UUID `json:"userId" gorm:"column:user_id"`
	AuthorName     string    `json:"authorName" gorm:"column:author_name"`
	Body           string    `json:"body" gorm:"column:body"`
	CreatedAt      time.Time `json:"createdAt" gorm:"column:created_at"`
}
