package subscriptions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/campusboard-backend/pkg/db/models"
)

// Repository encapsulates subscription and push endpoint persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a subscriptions repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUserID returns the user's subscription row, if any.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpsertNotify inserts or updates the user's opt-in flag in one statement.
func (r *Repository) UpsertNotify(ctx context.Context, userID uuid.UUID, enabled bool) error {
	if userID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO subscriptions (id, user_id, notify_enabled) VALUES (?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET notify_enabled = excluded.notify_enabled`,
			uuid.New(), userID, enabled).
		Error
}

// CreateEndpoint inserts a push endpoint and ignores duplicates.
func (r *Repository) CreateEndpoint(ctx context.Context, endpoint *models.PushEndpoint) error {
	if endpoint == nil || endpoint.UserID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	id := endpoint.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO push_endpoints (id, user_id, endpoint, p256dh, auth) VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, endpoint) DO NOTHING`,
			id, endpoint.UserID, endpoint.Endpoint, endpoint.P256dh, endpoint.Auth).
		Error
}

// DeleteEndpoint removes one endpoint registration for the user.
func (r *Repository) DeleteEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Delete(&models.PushEndpoint{}).
		Error
}

// DeleteEndpointsByUser removes every endpoint the user registered.
func (r *Repository) DeleteEndpointsByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.PushEndpoint{}).
		Error
}

// DeleteEndpointByURL removes an endpoint regardless of owner. Used when the
// push service reports the registration gone.
func (r *Repository) DeleteEndpointByURL(ctx context.Context, endpoint string) error {
	return r.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&models.PushEndpoint{}).
		Error
}

// ListEndpointsByUser returns the endpoints one user has registered.
func (r *Repository) ListEndpointsByUser(ctx context.Context, userID uuid.UUID) ([]models.PushEndpoint, error) {
	var endpoints []models.PushEndpoint
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&endpoints).Error; err != nil {
		return nil, err
	}
	return endpoints, nil
}

// ListEnabledUserIDs returns every user with notifications switched on.
func (r *Repository) ListEnabledUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("notify_enabled = ?", true).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListEnabledEndpoints returns the push endpoints of every opted-in user.
func (r *Repository) ListEnabledEndpoints(ctx context.Context) ([]models.PushEndpoint, error) {
	var endpoints []models.PushEndpoint
	if err := r.db.WithContext(ctx).
		Table("push_endpoints pe").
		Select("pe.*").
		Joins("JOIN subscriptions s ON s.user_id = pe.user_id").
		Where("s.notify_enabled = ?", true).
		Find(&endpoints).Error; err != nil {
		return nil, err
	}
	return endpoints, nil
}
