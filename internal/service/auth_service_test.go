package service

import (
	"testing"
	"time"

	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock repositories ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *domain.User) error {
	args := m.Called(user)
	// simulate the autoincrement assignment
	if user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(id int64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Search(term string, excludeUserID int64) ([]*domain.User, error) {
	args := m.Called(term, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Create(profile *domain.Profile) error {
	args := m.Called(profile)
	if profile.ID == 0 {
		profile.ID = 10
	}
	return args.Error(0)
}

func (m *mockProfileRepo) Save(profile *domain.Profile) error {
	return m.Called(profile).Error(0)
}

func (m *mockProfileRepo) FindByID(id int64) (*domain.Profile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) FindByUserID(userID int64) (*domain.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func testJWTManager() *jwt.Manager {
	return jwt.NewManager("test-secret", time.Hour)
}

// --- Tests ---

func TestRegister_Success(t *testing.T) {
	users := new(mockUserRepo)
	profiles := new(mockProfileRepo)
	svc := NewAuthService(users, profiles, testJWTManager())

	users.On("FindByEmail", "asha@example.com").Return(nil, common.ErrUserNotFound)
	users.On("Create", mock.AnythingOfType("*domain.User")).Return(nil)
	profiles.On("Create", mock.AnythingOfType("*domain.Profile")).Return(nil)

	resp, err := svc.Register(&domain.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.RoleUser, resp.Role)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, int64(10), resp.ProfileID)
	users.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestRegister_HashesPassword(t *testing.T) {
	users := new(mockUserRepo)
	profiles := new(mockProfileRepo)
	svc := NewAuthService(users, profiles, testJWTManager())

	var created *domain.User
	users.On("FindByEmail", mock.Anything).Return(nil, common.ErrUserNotFound)
	users.On("Create", mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*domain.User)
	}).Return(nil)
	profiles.On("Create", mock.Anything).Return(nil)

	_, err := svc.Register(&domain.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, "secret123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	profiles := new(mockProfileRepo)
	svc := NewAuthService(users, profiles, testJWTManager())

	users.On("FindByEmail", "asha@example.com").Return(&domain.User{ID: 5}, nil)

	_, err := svc.Register(&domain.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	users := new(mockUserRepo)
	profiles := new(mockProfileRepo)
	svc := NewAuthService(users, profiles, testJWTManager())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &domain.User{ID: 1, Email: "asha@example.com", Password: string(hashed), Role: domain.RoleUser}
	users.On("FindByEmail", "asha@example.com").Return(user, nil)
	profiles.On("FindByUserID", int64(1)).Return(&domain.Profile{ID: 10, UserID: 1}, nil)

	resp, err := svc.Login(&domain.AuthRequest{Email: "asha@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(10), resp.ProfileID)

	// the issued token verifies and carries the identities
	claims, err := testJWTManager().VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, int64(10), claims.ProfileID)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	profiles := new(mockProfileRepo)
	svc := NewAuthService(users, profiles, testJWTManager())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users.On("FindByEmail", "asha@example.com").Return(&domain.User{ID: 1, Password: string(hashed)}, nil)

	_, err := svc.Login(&domain.AuthRequest{Email: "asha@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	profiles := new(mockProfileRepo)
	svc := NewAuthService(users, profiles, testJWTManager())

	users.On("FindByEmail", "nobody@example.com").Return(nil, common.ErrUserNotFound)

	_, err := svc.Login(&domain.AuthRequest{Email: "nobody@example.com", Password: "x"})

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}
