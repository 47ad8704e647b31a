package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/testhelpers"
)

func TestUserService_Create(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, "maria", "secret123", "es")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "maria", user.Username)
	assert.Equal(t, "es", user.PreferredLanguage)

	// Credential is stored hashed, never in plaintext.
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestUserService_CreateDefaultsLanguage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Create(context.Background(), "joao", "secret123", "")
	require.NoError(t, err)
	assert.Equal(t, "pt", user.PreferredLanguage)
}

func TestUserService_CreateDuplicateUsername(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, "maria", "secret123", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "maria", "othersecret", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserService_GetByID(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, "maria", "secret123", "")
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria", fetched.Username)

	_, err = svc.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserService_Exists(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, "maria", "secret123", "")
	require.NoError(t, err)

	exists, err := svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, exists)
}
