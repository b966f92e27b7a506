package subscriptions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuskit/campusboard-backend/pkg/db/models"
)

func setupSubscriptionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:subscriptions_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	subscriptions := `
CREATE TABLE IF NOT EXISTS subscriptions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  notify_enabled INTEGER NOT NULL DEFAULT 1
);`
	pushEndpoints := `
CREATE TABLE IF NOT EXISTS push_endpoints (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  endpoint TEXT NOT NULL,
  p256dh TEXT NOT NULL,
  auth TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, endpoint)
);`
	for _, stmt := range []string{subscriptions, pushEndpoints} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	require.NoError(t, db.Exec(`DELETE FROM subscriptions`).Error)
	require.NoError(t, db.Exec(`DELETE FROM push_endpoints`).Error)
	return db
}

func TestUpsertNotify_InsertsThenFlips(t *testing.T) {
	db := setupSubscriptionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.UpsertNotify(ctx, userID, true))
	sub, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, sub.NotifyEnabled)

	require.NoError(t, repo.UpsertNotify(ctx, userID, false))
	sub, err = repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.False(t, sub.NotifyEnabled)

	var count int64
	require.NoError(t, db.Model(&models.Subscription{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateEndpoint_DuplicateIsNoop(t *testing.T) {
	db := setupSubscriptionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	endpoint := &models.PushEndpoint{
		UserID:   userID,
		Endpoint: "https://push.example.com/sub/abc",
		P256dh:   "p256dh-key",
		Auth:     "auth-secret",
	}
	require.NoError(t, repo.CreateEndpoint(ctx, endpoint))
	require.NoError(t, repo.CreateEndpoint(ctx, endpoint))

	var count int64
	require.NoError(t, db.Model(&models.PushEndpoint{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteEndpointsByUser_LeavesOtherUsersAlone(t *testing.T) {
	db := setupSubscriptionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()

	require.NoError(t, repo.CreateEndpoint(ctx, &models.PushEndpoint{
		UserID: userA, Endpoint: "https://push.example.com/a", P256dh: "k", Auth: "a",
	}))
	require.NoError(t, repo.CreateEndpoint(ctx, &models.PushEndpoint{
		UserID: userB, Endpoint: "https://push.example.com/b", P256dh: "k", Auth: "a",
	}))

	require.NoError(t, repo.DeleteEndpointsByUser(ctx, userA))

	var count int64
	require.NoError(t, db.Model(&models.PushEndpoint{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListEndpointsByUser_ScopedToOwner(t *testing.T) {
	db := setupSubscriptionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()

	require.NoError(t, repo.CreateEndpoint(ctx, &models.PushEndpoint{
		UserID: userA, Endpoint: "https://push.example.com/a1", P256dh: "k", Auth: "a",
	}))
	require.NoError(t, repo.CreateEndpoint(ctx, &models.PushEndpoint{
		UserID: userA, Endpoint: "https://push.example.com/a2", P256dh: "k", Auth: "a",
	}))
	require.NoError(t, repo.CreateEndpoint(ctx, &models.PushEndpoint{
		UserID: userB, Endpoint: "https://push.example.com/b", P256dh: "k", Auth: "a",
	}))

	endpoints, err := repo.ListEndpointsByUser(ctx, userA)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)
	for _, endpoint := range endpoints {
		assert.Equal(t, userA, endpoint.UserID)
	}

	endpoints, err = repo.ListEndpointsByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, endpoints)
}

func TestListEnabledEndpoints_FiltersDisabledUsers(t *testing.T) {
	db := setupSubscriptionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	enabledUser := uuid.New()
	disabledUser := uuid.New()

	require.NoError(t, repo.UpsertNotify(ctx, enabledUser, true))
	require.NoError(t, repo.UpsertNotify(ctx, disabledUser, false))
	require.NoError(t, repo.CreateEndpoint(ctx, &models.PushEndpoint{
		UserID: enabledUser, Endpoint: "https://push.example.com/on", P256dh: "k", Auth: "a",
	}))
	require.NoError(t, repo.CreateEndpoint(ctx, &models.PushEndpoint{
		UserID: disabledUser, Endpoint: "https://push.example.com/off", P256dh: "k", Auth: "a",
	}))

	endpoints, err := repo.ListEnabledEndpoints(ctx)
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, enabledUser, endpoints[0].UserID)

	ids, err := repo.ListEnabledUserIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, enabledUser, ids[0])
}
