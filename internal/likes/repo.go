package likes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/campusboard-backend/pkg/db/models"
)

// Repository encapsulates like persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a likes repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddLike inserts the like and reports whether a row was actually created.
// The unique index makes concurrent duplicate likes collapse to one row.
func (r *Repository) AddLike(ctx context.Context, userID, announcementID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || announcementID == uuid.Nil {
		return false, gorm.ErrInvalidValue
	}
	result := r.db.WithContext(ctx).
		Exec(`INSERT INTO likes (id, user_id, announcement_id) VALUES (?, ?, ?)
ON CONFLICT (user_id, announcement_id) DO NOTHING`,
			uuid.New(), userID, announcementID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveLike deletes the user's like if present.
func (r *Repository) RemoveLike(ctx context.Context, userID, announcementID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND announcement_id = ?", userID, announcementID).
		Delete(&models.Like{}).
		Error
}

// Count returns the announcement's like total.
func (r *Repository) Count(ctx context.Context, announcementID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("announcement_id = ?", announcementID).
		Count(&count).Error
	return count, err
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
