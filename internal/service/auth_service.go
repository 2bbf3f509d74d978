package service

import (
	"errors"
	"time"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/repository"
	"github.com/postfolio/postfolio-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login
type AuthService interface {
	Register(req *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(req *domain.AuthRequest) (*domain.AuthResponse, error)
}

type authService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	tokens   *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, profiles repository.ProfileRepository, tokens *jwt.Manager) AuthService {
	return &authService{users: users, profiles: profiles, tokens: tokens}
}

// Register creates the account, an empty profile for it, and returns
// a token so the client is logged in immediately
func (s *authService) Register(req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, common.ErrUserAlreadyExists
	} else if !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	profile := &domain.Profile{UserID: user.ID}
	if err := s.profiles.Create(profile); err != nil {
		return nil, err
	}

	return s.issueToken(user, profile.ID)
}

// Login verifies the credentials and returns a token
func (s *authService) Login(req *domain.AuthRequest) (*domain.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	profile, err := s.profiles.FindByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	return s.issueToken(user, profile.ID)
}

func (s *authService) issueToken(user *domain.User, profileID int64) (*domain.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, profileID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{
		Token:     token,
		Role:      user.Role,
		UserID:    user.ID,
		ProfileID: profileID,
	}, nil
}
