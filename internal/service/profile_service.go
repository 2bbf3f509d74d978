package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
)

const birthDateLayout = "2006-01-02"

// ProfileService manages portfolio profiles
type ProfileService interface {
	GetProfile(profileID int64) (*domain.Profile, error)
	GetProfileByUserID(userID int64) (*domain.Profile, error)
	// InitializeForUser creates an empty profile for the user; no-op
	// when one already exists
	InitializeForUser(userID int64) (*domain.Profile, error)
	UpdateProfile(userID int64, req *domain.ProfileRequest, picture []byte) (*domain.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) GetProfile(profileID int64) (*domain.Profile, error) {
	return s.profiles.FindByID(profileID)
}

func (s *profileService) GetProfileByUserID(userID int64) (*domain.Profile, error) {
	return s.profiles.FindByUserID(userID)
}

func (s *profileService) InitializeForUser(userID int64) (*domain.Profile, error) {
	existing, err := s.profiles.FindByUserID(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrProfileNotFound) {
		return nil, err
	}

	profile := &domain.Profile{UserID: userID}
	if err := s.profiles.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies the request onto the caller's own profile.
// Empty request fields are ignored so partial updates work; the
// picture replaces the stored one only when a new upload is present.
func (s *profileService) UpdateProfile(userID int64, req *domain.ProfileRequest, picture []byte) (*domain.Profile, error) {
	profile, err := s.InitializeForUser(userID)
	if err != nil {
		return nil, err
	}

	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.Position != "" {
		profile.Position = req.Position
	}
	if req.SscResult != "" {
		profile.SscResult = req.SscResult
	}
	if req.HscResult != "" {
		profile.HscResult = req.HscResult
	}
	if req.University != "" {
		profile.UniversityResult = req.University
	}
	if req.BirthDate != "" {
		parsed, err := time.Parse(birthDateLayout, req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", common.ErrInvalidInput)
		}
		profile.BirthDate = &parsed
	}
	if len(picture) > 0 {
		profile.PictureBase64 = base64.StdEncoding.EncodeToString(picture)
	}

	if err := s.profiles.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
