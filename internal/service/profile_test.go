package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/testhelpers"
)

func profileInput(userID uint) *ProfileInput {
	return &ProfileInput{
		UserID:        userID,
		Weight:        80,
		Height:        180,
		Age:           30,
		Gender:        "male",
		ActivityLevel: "moderate",
		Goal:          "maintain",
	}
}

func TestProfileService_Upsert(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := createTestUser(t, db)

	profile, err := svc.Upsert(ctx, profileInput(user.ID))
	require.NoError(t, err)

	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, 2856, profile.Calories)
	assert.Equal(t, 214, profile.Protein)
	assert.Equal(t, 286, profile.Carbs)
	assert.Equal(t, 95, profile.Fats)
	assert.Equal(t, 40, profile.Fiber)
}

func TestProfileService_UpsertUnknownUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)

	_, err := svc.Upsert(context.Background(), profileInput(9999))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileService_UpsertReplacesTargets(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := createTestUser(t, db)

	first, err := svc.Upsert(ctx, profileInput(user.ID))
	require.NoError(t, err)

	in := profileInput(user.ID)
	in.Goal = "lose_weight"
	second, err := svc.Upsert(ctx, in)
	require.NoError(t, err)

	// Same row upserted, targets fully replaced.
	assert.Equal(t, first.ID, second.ID)
	assert.Less(t, second.Calories, first.Calories)

	var count int64
	require.NoError(t, db.Table("nutrition_profiles").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProfileService_NotComputableKeepsPriorTargets(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := createTestUser(t, db)

	first, err := svc.Upsert(ctx, profileInput(user.ID))
	require.NoError(t, err)

	in := profileInput(user.ID)
	in.Weight = -5
	second, err := svc.Upsert(ctx, in)
	require.NoError(t, err, "not-computable is a defined state, not a failure")

	// Attributes update, previously computed targets stay.
	assert.Equal(t, -5.0, second.Weight)
	assert.Equal(t, first.Calories, second.Calories)
	assert.Equal(t, first.Protein, second.Protein)
}

func TestProfileService_GetByUserID(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := createTestUser(t, db)

	_, err := svc.Upsert(ctx, profileInput(user.ID))
	require.NoError(t, err)

	profile, err := svc.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2856, profile.Calories)

	_, err = svc.GetByUserID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
