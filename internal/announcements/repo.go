package announcements

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/campusboard-backend/pkg/db/models"
)

const announcementColumns = `a.id, a.title, a.body, a.author_id, u.name AS author_name,
(SELECT COUNT(*) FROM likes l WHERE l.announcement_id = a.id) AS like_count,
(SELECT COUNT(*) FROM comments c WHERE c.announcement_id = a.id) AS comment_count,
a.created_at, a.updated_at`

// Repository exposes announcement persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an announcements repo bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the announcement and returns the persisted model.
func (r *Repository) Create(ctx context.Context, announcement *models.Announcement) error {
	if announcement.ID == uuid.Nil {
		announcement.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(announcement).Error
}

// List returns every announcement newest first with author and counts.
func (r *Repository) List(ctx context.Context) ([]AnnouncementDTO, error) {
	var rows []AnnouncementDTO
	err := r.db.WithContext(ctx).
		Table("announcements a").
		Select(announcementColumns).
		Joins("JOIN users u ON u.id = a.author_id").
		Order("a.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindDTO loads one announcement with author and counts.
func (r *Repository) FindDTO(ctx context.Context, id uuid.UUID) (*AnnouncementDTO, error) {
	var row AnnouncementDTO
	err := r.db.WithContext(ctx).
		Table("announcements a").
		Select(announcementColumns).
		Joins("JOIN users u ON u.id = a.author_id").
		Where("a.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// Find loads the bare announcement model.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := r.db.WithContext(ctx).First(&announcement, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

// Update overwrites title and body.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, title, body string) error {
	return r.db.WithContext(ctx).
		Model(&models.Announcement{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "body": body}).Error
}

// Delete removes the announcement.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Announcement{}, "id = ?", id).Error
}
