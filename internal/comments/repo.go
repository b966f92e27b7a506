package comments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/campusboard-backend/pkg/db/models"
)

// Repository exposes comment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a comments repo bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the comment.
func (r *Repository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByAnnouncement returns the announcement's comments oldest first with
// author names.
func (r *Repository) ListByAnnouncement(ctx context.Context, announcementID uuid.UUID) ([]CommentDTO, error) {
	var rows []CommentDTO
	err := r.db.WithContext(ctx).
		Table("comments c").
		Select("c.id, c.announcement_id, c.user_id, u.name AS author_name, c.body, c.created_at").
		Joins("JOIN users u ON u.id = c.user_id").
		Where("c.announcement_id = ?", announcementID).
		Order("c.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Find loads one comment.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes the comment.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error
}

// AnnouncementExists reports whether the target announcement is present.
func (r *Repository) AnnouncementExists(ctx context.Context, announcementID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Announcement{}).
		Where("id = ?", announcementID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
