package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/campuskit/campusboard-backend/internal/announcements"
	"github.com/campuskit/campusboard-backend/internal/comments"
	"github.com/campuskit/campusboard-backend/pkg/enums"
	pkgerrors "github.com/campuskit/campusboard-backend/pkg/errors"
)

type testAnnouncementsService struct {
	listFn   func(ctx context.Context) ([]announcements.AnnouncementDTO, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*announcements.AnnouncementDTO, error)
	createFn func(ctx context.Context, authorID uuid.UUID, req announcements.CreateRequest) (*announcements.AnnouncementDTO, error)
	updateFn func(ctx context.Context, id, actorID uuid.UUID, req announcements.UpdateRequest) (*announcements.AnnouncementDTO, error)
	deleteFn func(ctx context.Context, id, actorID uuid.UUID) error
}

func (s *testAnnouncementsService) List(ctx context.Context) ([]announcements.AnnouncementDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return []announcements.AnnouncementDTO{}, nil
}

func (s *testAnnouncementsService) Get(ctx context.Context, id uuid.UUID) (*announcements.AnnouncementDTO, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
}

func (s *testAnnouncementsService) Create(ctx context.Context, authorID uuid.UUID, req announcements.CreateRequest) (*announcements.AnnouncementDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, authorID, req)
	}
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s *testAnnouncementsService) Update(ctx context.Context, id, actorID uuid.UUID, req announcements.UpdateRequest) (*announcements.AnnouncementDTO, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, actorID, req)
	}
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s *testAnnouncementsService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id, actorID)
	}
	return nil
}

type testCommentsService struct {
	listFn func(ctx context.Context, announcementID uuid.UUID) ([]comments.CommentDTO, error)
}

func (s *testCommentsService) Create(ctx context.Context, announcementID, userID uuid.UUID, req comments.CreateRequest) (*comments.CommentDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s *testCommentsService) ListByAnnouncement(ctx context.Context, announcementID uuid.UUID) ([]comments.CommentDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, announcementID)
	}
	return []comments.CommentDTO{}, nil
}

func (s *testCommentsService) Delete(ctx context.Context, commentID, actorID uuid.UUID) error {
	return nil
}

func TestGetAnnouncementIncludesComments(t *testing.T) {
	announcementID := uuid.New()
	svc := &testAnnouncementsService{
		getFn: func(ctx context.Context, id uuid.UUID) (*announcements.AnnouncementDTO, error) {
			return &announcements.AnnouncementDTO{ID: id, Title: "Library hours"}, nil
		},
	}
	commentsSvc := &testCommentsService{
		listFn: func(ctx context.Context, id uuid.UUID) ([]comments.CommentDTO, error) {
			if id != announcementID {
				t.Fatalf("unexpected announcement %s", id)
			}
			return []comments.CommentDTO{{ID: uuid.New(), Body: "thanks"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/announcements/"+announcementID.String(), nil)
	req = addRouteParam(req, "id", announcementID.String())
	resp := httptest.NewRecorder()
	GetAnnouncement(svc, commentsSvc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var body struct {
		Title    string           `json:"title"`
		Comments []map[string]any `json:"comments"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Title != "Library hours" {
		t.Fatalf("unexpected title %q", body.Title)
	}
	if len(body.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(body.Comments))
	}
}

func TestGetAnnouncementNotFound(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/announcements/"+id.String(), nil)
	req = addRouteParam(req, "id", id.String())
	resp := httptest.NewRecorder()
	GetAnnouncement(&testAnnouncementsService{}, &testCommentsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCreateAnnouncementReturnsCreated(t *testing.T) {
	authorID := uuid.New()
	svc := &testAnnouncementsService{
		createFn: func(ctx context.Context, aid uuid.UUID, req announcements.CreateRequest) (*announcements.AnnouncementDTO, error) {
			if aid != authorID {
				t.Fatalf("unexpected author %s", aid)
			}
			return &announcements.AnnouncementDTO{ID: uuid.New(), Title: req.Title, Body: req.Body, AuthorID: aid}, nil
		},
	}

	body := `{"title":"Midterm schedule","body":"Posted outside the registrar office."}`
	req := httptest.NewRequest(http.MethodPost, "/api/announcements", strings.NewReader(body))
	req = asUser(req, authorID.String(), enums.UserRoleFaculty)
	resp := httptest.NewRecorder()
	CreateAnnouncement(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateAnnouncementRejectsMissingTitle(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/announcements", strings.NewReader(`{"body":"no title"}`))
	req = asUser(req, uuid.NewString(), enums.UserRoleFaculty)
	resp := httptest.NewRecorder()
	CreateAnnouncement(&testAnnouncementsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDeleteAnnouncementForbiddenForStranger(t *testing.T) {
	svc := &testAnnouncementsService{
		deleteFn: func(ctx context.Context, id, actorID uuid.UUID) error {
			return pkgerrors.New(pkgerrors.CodeForbidden, "not the author")
		},
	}

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/announcements/"+id.String(), nil)
	req = asUser(req, uuid.NewString(), enums.UserRoleFaculty)
	req = addRouteParam(req, "id", id.String())
	resp := httptest.NewRecorder()
	DeleteAnnouncement(svc, testLogger())(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}
