package repository

import (
	"errors"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"gorm.io/gorm"
)

// ProfileRepository profile storage
type ProfileRepository interface {
	Create(profile *domain.Profile) error
	Save(profile *domain.Profile) error
	FindByID(id int64) (*domain.Profile, error)
	FindByUserID(userID int64) (*domain.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *domain.Profile) error {
	return r.db.Create(profile).Error
}

func (r *profileRepository) Save(profile *domain.Profile) error {
	return r.db.Save(profile).Error
}

// FindByID loads the profile together with its owning user
func (r *profileRepository) FindByID(id int64) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.Preload("User").First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByUserID(userID int64) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
