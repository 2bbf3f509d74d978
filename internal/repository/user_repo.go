package repository

import (
	"errors"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository account storage
type UserRepository interface {
	Create(user *domain.User) error
	FindByID(id int64) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	Search(term string, excludeUserID int64) ([]*domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id int64) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Search matches name or email by substring, excluding the caller
func (r *userRepository) Search(term string, excludeUserID int64) ([]*domain.User, error) {
	var users []*domain.User
	pattern := "%" + term + "%"
	err := r.db.
		Where("(name LIKE ? OR email LIKE ?) AND id <> ?", pattern, pattern, excludeUserID).
		Order("name ASC").
		Find(&users).Error
	return users, err
}
