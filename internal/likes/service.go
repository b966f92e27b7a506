package likes

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/campuskit/campusboard-backend/pkg/errors"
)

// Service defines the like toggle operation.
type Service interface {
	Toggle(ctx context.Context, userID, announcementID uuid.UUID) (*ToggleResult, error)
}

type repository interface {
	AddLike(ctx context.Context, userID, announcementID uuid.UUID) (bool, error)
	RemoveLike(ctx context.Context, userID, announcementID uuid.UUID) error
	Count(ctx context.Context, announcementID uuid.UUID) (int64, error)
	AnnouncementExists(ctx context.Context, announcementID uuid.UUID) (bool, error)
}

type service struct {
	repo repository
}

// NewService wires like dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "likes repository required")
	}
	return &service{repo: repo}, nil
}

// Toggle adds the like when absent and removes it when present. The insert
// is conflict-guarded, so a duplicate insert means "already liked" and turns
// into a removal.
func (s *service) Toggle(ctx context.Context, userID, announcementID uuid.UUID) (*ToggleResult, error) {
	if userID == uuid.Nil || announcementID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user and announcement required")
	}

	exists, err := s.repo.AnnouncementExists(ctx, announcementID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check announcement")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
	}

	inserted, err := s.repo.AddLike(ctx, userID, announcementID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add like")
	}
	liked := inserted
	if !inserted {
		if err := s.repo.RemoveLike(ctx, userID, announcementID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove like")
		}
	}

	count, err := s.repo.Count(ctx, announcementID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count likes")
	}
	return &ToggleResult{Liked: liked, LikeCount: count}, nil
}
