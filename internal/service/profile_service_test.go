package service

import (
	"encoding/base64"
	"testing"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProfileService(t *testing.T) ProfileService {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&domain.User{ID: 1, Name: "Asha", Email: "asha@example.com", Password: "x", Role: domain.RoleUser}).Error)
	return NewProfileService(repository.NewProfileRepository(db))
}

func TestInitializeForUser_NoOpWhenExists(t *testing.T) {
	svc := setupProfileService(t)

	first, err := svc.InitializeForUser(1)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := svc.InitializeForUser(1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestUpdateProfile_CreatesWhenMissing(t *testing.T) {
	svc := setupProfileService(t)

	profile, err := svc.UpdateProfile(1, &domain.ProfileRequest{Bio: "Backend engineer"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", profile.Bio)

	stored, err := svc.GetProfileByUserID(1)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, stored.ID)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	svc := setupProfileService(t)

	_, err := svc.UpdateProfile(1, &domain.ProfileRequest{Bio: "Backend engineer", Address: "Dhaka"}, nil)
	require.NoError(t, err)

	// empty fields leave existing values untouched
	updated, err := svc.UpdateProfile(1, &domain.ProfileRequest{Address: "Chattogram"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", updated.Bio)
	assert.Equal(t, "Chattogram", updated.Address)
}

func TestUpdateProfile_StoresPictureBase64(t *testing.T) {
	svc := setupProfileService(t)

	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	profile, err := svc.UpdateProfile(1, &domain.ProfileRequest{}, raw)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), profile.PictureBase64)
}

func TestUpdateProfile_RejectsBadBirthDate(t *testing.T) {
	svc := setupProfileService(t)

	_, err := svc.UpdateProfile(1, &domain.ProfileRequest{BirthDate: "31-12-1999"}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
