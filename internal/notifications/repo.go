package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/campusboard-backend/pkg/db/models"
)

// Repository exposes persistence helpers for the notification ledger.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a notifications repository bound to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type markResult struct {
	Updated bool
	Found   bool
}

// List returns the user's newest entries joined with announcement title and
// author name.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, limit int) ([]NotificationDTO, error) {
	var rows []NotificationDTO
	err := r.db.WithContext(ctx).
		Table("notifications n").
		Select("n.id, n.announcement_id, a.title, u.name AS author_name, n.read, n.created_at").
		Joins("JOIN announcements a ON a.id = n.announcement_id").
		Joins("JOIN users u ON u.id = a.author_id").
		Where("n.user_id = ?", userID).
		Order("n.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UnreadCount counts the user's unread entries.
func (r *Repository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips one entry to read, scoped to the owning user. Rows that
// belong to someone else are never touched.
func (r *Repository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (markResult, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read = ?", notificationID, userID, false).
		UpdateColumn("read", true)
	if result.Error != nil {
		return markResult{}, result.Error
	}

	mark := markResult{Updated: result.RowsAffected > 0}
	if mark.Updated {
		mark.Found = true
		return mark, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Count(&count).Error; err != nil {
		return markResult{}, err
	}
	mark.Found = count > 0
	return mark, nil
}

// MarkAllRead flips every unread entry for the user.
func (r *Repository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		UpdateColumn("read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// BulkCreate inserts one unread entry per recipient in a single statement.
func (r *Repository) BulkCreate(ctx context.Context, announcementID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]models.Notification, 0, len(userIDs))
	now := time.Now().UTC()
	for _, userID := range userIDs {
		rows = append(rows, models.Notification{
			ID:             uuid.New(),
			UserID:         userID,
			AnnouncementID: announcementID,
			Read:           false,
			CreatedAt:      now,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// DeleteReadOlderThan prunes read entries past the retention cutoff.
func (r *Repository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
