package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuskit/campusboard-backend/pkg/enums"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:users_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  role TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at DATETIME
);`).Error)
	require.NoError(t, db.Exec(`DELETE FROM users`).Error)
	return db
}

func TestCreateAndFindByEmail(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Name:         "Grace",
		Email:        "grace@campus.edu",
		Role:         enums.UserRoleFaculty,
		PasswordHash: "argon2id$hash",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByEmail(ctx, "grace@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, enums.UserRoleFaculty, found.Role)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", byID.Name)
}

func TestFindByIDMissing(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestExistsByEmail(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	exists, err := repo.ExistsByEmail(ctx, "nobody@campus.edu")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Create(ctx, CreateUserDTO{
		Name:         "Alan",
		Email:        "alan@campus.edu",
		Role:         enums.UserRoleStudent,
		PasswordHash: "argon2id$hash",
	})
	require.NoError(t, err)

	exists, err = repo.ExistsByEmail(ctx, "alan@campus.edu")
	require.NoError(t, err)
	assert.True(t, exists)
}
