package subscriptions

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/campusboard-backend/pkg/db/models"
	pkgerrors "github.com/campuskit/campusboard-backend/pkg/errors"
)

// Service defines the subscription registry operations.
type Service interface {
	Status(ctx context.Context, userID uuid.UUID) (StatusDTO, error)
	Toggle(ctx context.Context, userID uuid.UUID) (StatusDTO, error)
	RegisterEndpoint(ctx context.Context, userID uuid.UUID, payload PushSubscriptionPayload) (StatusDTO, error)
	RemoveEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error
}

type repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
	UpsertNotify(ctx context.Context, userID uuid.UUID, enabled bool) error
	CreateEndpoint(ctx context.Context, endpoint *models.PushEndpoint) error
	DeleteEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error
	DeleteEndpointsByUser(ctx context.Context, userID uuid.UUID) error
	ListEndpointsByUser(ctx context.Context, userID uuid.UUID) ([]models.PushEndpoint, error)
}

type service struct {
	repo repository
}

// NewService wires the subscription registry.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "subscriptions repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Status(ctx context.Context, userID uuid.UUID) (StatusDTO, error) {
	if userID == uuid.Nil {
		return StatusDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	sub, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusDTO{Subscribed: false, Endpoints: []EndpointDTO{}}, nil
		}
		return StatusDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}
	return s.statusFor(ctx, userID, sub.NotifyEnabled)
}

// statusFor assembles the DTO with the user's registered endpoints.
func (s *service) statusFor(ctx context.Context, userID uuid.UUID, enabled bool) (StatusDTO, error) {
	rows, err := s.repo.ListEndpointsByUser(ctx, userID)
	if err != nil {
		return StatusDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list push endpoints")
	}
	endpoints := make([]EndpointDTO, 0, len(rows))
	for _, row := range rows {
		endpoints = append(endpoints, EndpointDTO{Endpoint: row.Endpoint})
	}
	return StatusDTO{Subscribed: enabled, Endpoints: endpoints}, nil
}

// Toggle flips the opt-in flag, creating the row switched on when it does
// not exist yet. Disabling drops every registered endpoint so future
// fan-outs have nothing to deliver to.
func (s *service) Toggle(ctx context.Context, userID uuid.UUID) (StatusDTO, error) {
	if userID == uuid.Nil {
		return StatusDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	enabled := true
	sub, err := s.repo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return StatusDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}
	if err == nil {
		enabled = !sub.NotifyEnabled
	}

	if err := s.repo.UpsertNotify(ctx, userID, enabled); err != nil {
		return StatusDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save subscription")
	}

	if !enabled {
		if err := s.repo.DeleteEndpointsByUser(ctx, userID); err != nil {
			return StatusDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drop push endpoints")
		}
	}

	return s.statusFor(ctx, userID, enabled)
}

// RegisterEndpoint stores a push registration and implicitly enables
// notifications. Re-registering the same endpoint is a no-op.
func (s *service) RegisterEndpoint(ctx context.Context, userID uuid.UUID, payload PushSubscriptionPayload) (StatusDTO, error) {
	if userID == uuid.Nil {
		return StatusDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	endpoint := strings.TrimSpace(payload.Endpoint)
	if endpoint == "" {
		return StatusDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "endpoint required")
	}
	if strings.TrimSpace(payload.Keys.P256dh) == "" || strings.TrimSpace(payload.Keys.Auth) == "" {
		return StatusDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "push keys required")
	}

	if err := s.repo.UpsertNotify(ctx, userID, true); err != nil {
		return StatusDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "enable subscription")
	}
	if err := s.repo.CreateEndpoint(ctx, &models.PushEndpoint{
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   payload.Keys.P256dh,
		Auth:     payload.Keys.Auth,
	}); err != nil {
		return StatusDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save push endpoint")
	}

	return s.statusFor(ctx, userID, true)
}

func (s *service) RemoveEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "endpoint required")
	}
	if err := s.repo.DeleteEndpoint(ctx, userID, endpoint); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete push endpoint")
	}
	return nil
}
