package announcements

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/campusboard-backend/pkg/db/models"
	pkgerrors "github.com/campuskit/campusboard-backend/pkg/errors"
)

// Service defines announcement CRUD plus the fan-out trigger.
type Service interface {
	List(ctx context.Context) ([]AnnouncementDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*AnnouncementDTO, error)
	Create(ctx context.Context, authorID uuid.UUID, req CreateRequest) (*AnnouncementDTO, error)
	Update(ctx context.Context, id, actorID uuid.UUID, req UpdateRequest) (*AnnouncementDTO, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	List(ctx context.Context) ([]AnnouncementDTO, error)
	FindDTO(ctx context.Context, id uuid.UUID) (*AnnouncementDTO, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Announcement, error)
	Update(ctx context.Context, id uuid.UUID, title, body string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Notifier is the fan-out hook fired after a successful create.
type Notifier interface {
	AnnouncementCreated(ctx context.Context, announcementID, authorID uuid.UUID, title string)
}

type service struct {
	repo     repository
	notifier Notifier
}

// NewService wires announcement dependencies. Notifier may be nil when
// fan-out is disabled.
func NewService(repo repository, notifier Notifier) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "announcements repository required")
	}
	return &service{repo: repo, notifier: notifier}, nil
}

func (s *service) List(ctx context.Context) ([]AnnouncementDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list announcements")
	}
	if rows == nil {
		rows = []AnnouncementDTO{}
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*AnnouncementDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "announcement id required")
	}
	row, err := s.repo.FindDTO(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load announcement")
	}
	return row, nil
}

// Create persists the announcement and fires fan-out once the row is safely
// stored. Fan-out failures never bubble up to the author.
func (s *service) Create(ctx context.Context, authorID uuid.UUID, req CreateRequest) (*AnnouncementDTO, error) {
	if authorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author id required")
	}
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if title == "" || body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and body are required")
	}

	announcement := &models.Announcement{
		Title:    title,
		Body:     body,
		AuthorID: authorID,
	}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create announcement")
	}

	if s.notifier != nil {
		s.notifier.AnnouncementCreated(ctx, announcement.ID, authorID, title)
	}

	return s.Get(ctx, announcement.ID)
}

func (s *service) Update(ctx context.Context, id, actorID uuid.UUID, req UpdateRequest) (*AnnouncementDTO, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if title == "" || body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and body are required")
	}

	if err := s.requireAuthor(ctx, id, actorID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, title, body); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update announcement")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	if err := s.requireAuthor(ctx, id, actorID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete announcement")
	}
	return nil
}

func (s *service) requireAuthor(ctx context.Context, id, actorID uuid.UUID) error {
	if id == uuid.Nil || actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "announcement id and actor required")
	}
	announcement, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load announcement")
	}
	if announcement.AuthorID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the author may modify this announcement")
	}
	return nil
}
