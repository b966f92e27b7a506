package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/campuskit/campusboard-backend/internal/subscriptions"
	"github.com/campuskit/campusboard-backend/pkg/enums"
)

type testSubscriptionsService struct {
	statusFn   func(ctx context.Context, userID uuid.UUID) (subscriptions.StatusDTO, error)
	toggleFn   func(ctx context.Context, userID uuid.UUID) (subscriptions.StatusDTO, error)
	registerFn func(ctx context.Context, userID uuid.UUID, payload subscriptions.PushSubscriptionPayload) (subscriptions.StatusDTO, error)
	removeFn   func(ctx context.Context, userID uuid.UUID, endpoint string) error
}

func (s *testSubscriptionsService) Status(ctx context.Context, userID uuid.UUID) (subscriptions.StatusDTO, error) {
	if s.statusFn != nil {
		return s.statusFn(ctx, userID)
	}
	return subscriptions.StatusDTO{}, nil
}

func (s *testSubscriptionsService) Toggle(ctx context.Context, userID uuid.UUID) (subscriptions.StatusDTO, error) {
	if s.toggleFn != nil {
		return s.toggleFn(ctx, userID)
	}
	return subscriptions.StatusDTO{}, nil
}

func (s *testSubscriptionsService) RegisterEndpoint(ctx context.Context, userID uuid.UUID, payload subscriptions.PushSubscriptionPayload) (subscriptions.StatusDTO, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, userID, payload)
	}
	return subscriptions.StatusDTO{}, nil
}

func (s *testSubscriptionsService) RemoveEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error {
	if s.removeFn != nil {
		return s.removeFn(ctx, userID, endpoint)
	}
	return nil
}

func TestSubscriptionStatus(t *testing.T) {
	userID := uuid.New()
	svc := &testSubscriptionsService{
		statusFn: func(ctx context.Context, uid uuid.UUID) (subscriptions.StatusDTO, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			return subscriptions.StatusDTO{Subscribed: true}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil)
	req = asUser(req, userID.String(), enums.UserRoleStudent)
	resp := httptest.NewRecorder()
	SubscriptionStatus(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var body subscriptions.StatusDTO
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !body.Subscribed {
		t.Fatal("expected subscribed true")
	}
}

func TestUpdateSubscriptionEmptyBodyToggles(t *testing.T) {
	toggled := false
	svc := &testSubscriptionsService{
		toggleFn: func(ctx context.Context, uid uuid.UUID) (subscriptions.StatusDTO, error) {
			toggled = true
			return subscriptions.StatusDTO{Subscribed: true}, nil
		},
		registerFn: func(ctx context.Context, uid uuid.UUID, payload subscriptions.PushSubscriptionPayload) (subscriptions.StatusDTO, error) {
			t.Fatal("register should not be called for an empty body")
			return subscriptions.StatusDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions", strings.NewReader(`{}`))
	req = asUser(req, uuid.NewString(), enums.UserRoleStudent)
	resp := httptest.NewRecorder()
	UpdateSubscription(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !toggled {
		t.Fatal("expected toggle called")
	}
}

func TestUpdateSubscriptionWithEndpointRegisters(t *testing.T) {
	var got subscriptions.PushSubscriptionPayload
	svc := &testSubscriptionsService{
		registerFn: func(ctx context.Context, uid uuid.UUID, payload subscriptions.PushSubscriptionPayload) (subscriptions.StatusDTO, error) {
			got = payload
			return subscriptions.StatusDTO{Subscribed: true}, nil
		},
		toggleFn: func(ctx context.Context, uid uuid.UUID) (subscriptions.StatusDTO, error) {
			t.Fatal("toggle should not be called when an endpoint is provided")
			return subscriptions.StatusDTO{}, nil
		},
	}

	payload := `{"pushSubscription":{"endpoint":"https://push.example/abc","keys":{"p256dh":"pk","auth":"ak"}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions", strings.NewReader(payload))
	req = asUser(req, uuid.NewString(), enums.UserRoleStudent)
	resp := httptest.NewRecorder()
	UpdateSubscription(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if got.Endpoint != "https://push.example/abc" {
		t.Fatalf("unexpected endpoint %q", got.Endpoint)
	}
	if got.Keys.P256dh != "pk" || got.Keys.Auth != "ak" {
		t.Fatalf("unexpected keys %+v", got.Keys)
	}
}

func TestUpdateSubscriptionAcceptsBrowserSerializedSubscription(t *testing.T) {
	var got subscriptions.PushSubscriptionPayload
	svc := &testSubscriptionsService{
		registerFn: func(ctx context.Context, uid uuid.UUID, payload subscriptions.PushSubscriptionPayload) (subscriptions.StatusDTO, error) {
			got = payload
			return subscriptions.StatusDTO{Subscribed: true}, nil
		},
	}

	// PushSubscription.toJSON() always includes expirationTime.
	payload := `{"pushSubscription":{"endpoint":"https://fcm.googleapis.com/fcm/send/abc","expirationTime":null,"keys":{"p256dh":"pk","auth":"ak"}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions", strings.NewReader(payload))
	req = asUser(req, uuid.NewString(), enums.UserRoleStudent)
	resp := httptest.NewRecorder()
	UpdateSubscription(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.Endpoint != "https://fcm.googleapis.com/fcm/send/abc" {
		t.Fatalf("unexpected endpoint %q", got.Endpoint)
	}
	if got.ExpirationTime != nil {
		t.Fatalf("expected nil expirationTime, got %v", *got.ExpirationTime)
	}
}

func TestRemoveSubscriptionEndpoint(t *testing.T) {
	removed := ""
	svc := &testSubscriptionsService{
		removeFn: func(ctx context.Context, uid uuid.UUID, endpoint string) error {
			removed = endpoint
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/subscriptions", strings.NewReader(`{"endpoint":"https://push.example/abc"}`))
	req = asUser(req, uuid.NewString(), enums.UserRoleStudent)
	resp := httptest.NewRecorder()
	RemoveSubscriptionEndpoint(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if removed != "https://push.example/abc" {
		t.Fatalf("unexpected endpoint %q", removed)
	}
}
