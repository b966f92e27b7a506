package models

import "github.com/google/uuid"

// Like marks that a user liked an announcement. The (user, announcement)
// pair is unique so concurrent toggles collapse at the storage layer.
type Like struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_announcement"`
	AnnouncementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_announcement"`
}
