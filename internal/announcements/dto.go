package announcements

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest is the payload for posting an announcement.
type CreateRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"required"`
}

// UpdateRequest carries edits to an existing announcement.
type UpdateRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"required"`
}

// AnnouncementDTO is the list/detail shape with author context and counts.
type AnnouncementDTO struct {
	ID           uuid.UUID `json:"id" gorm:"column:id"`
	Title        string    `json:"title" gorm:"column:title"`
	Body         string    `json:"body" gorm:"column:body"`
	AuthorID     uuid.UUID `json:"authorId" gorm:"column:author_id"`
	AuthorName   string    `json:"authorName" gorm:"column:author_name"`
	LikeCount    int64     `json:"likeCount" gorm:"column:like_count"`
	CommentCount int64     `json:"commentCount" gorm:"column:comment_count"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at"`
}
