package comments

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/campusboard-backend/pkg/db/models"
	pkgerrors "github.com/campuskit/campusboard-backend/pkg/errors"
)

// Service defines comment operations.
type Service interface {
	Create(ctx context.Context, announcementID, userID uuid.UUID, req CreateRequest) (*CommentDTO, error)
	ListByAnnouncement(ctx context.Context, announcementID uuid.UUID) ([]CommentDTO, error)
	Delete(ctx context.Context, commentID, actorID uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByAnnouncement(ctx context.Context, announcementID uuid.UUID) ([]CommentDTO, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AnnouncementExists(ctx context.Context, announcementID uuid.UUID) (bool, error)
}

type service struct {
	repo repository
}

// NewService wires comment dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "comments repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, announcementID, userID uuid.UUID, req CreateRequest) (*CommentDTO, error) {
	if announcementID == uuid.Nil || userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "announcement and user required")
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment body required")
	}

	exists, err := s.repo.AnnouncementExists(ctx, announcementID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check announcement")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
	}

	comment := &models.Comment{
		AnnouncementID: announcementID,
		UserID:         userID,
		Body:           body,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create comment")
	}

	rows, err := s.repo.ListByAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comment")
	}
	for i := range rows {
		if rows[i].ID == comment.ID {
			return &rows[i], nil
		}
	}
	return &CommentDTO{
		ID:             comment.ID,
		AnnouncementID: announcementID,
		UserID:         userID,
		Body:           body,
		CreatedAt:      comment.CreatedAt,
	}, nil
}

func (s *service) ListByAnnouncement(ctx context.Context, announcementID uuid.UUID) ([]CommentDTO, error) {
	if announcementID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "announcement id required")
	}
	rows, err := s.repo.ListByAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
	}
	if rows == nil {
		rows = []CommentDTO{}
	}
	return rows, nil
}

// Delete removes the actor's own comment; foreign comments are forbidden.
func (s *service) Delete(ctx context.Context, commentID, actorID uuid.UUID) error {
	if commentID == uuid.Nil || actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment id and actor required")
	}

	comment, err := s.repo.Find(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "comment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comment")
	}
	if comment.UserID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the comment author may delete it")
	}
	if err := s.repo.Delete(ctx, commentID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete comment")
	}
	return nil
}
