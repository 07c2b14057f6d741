package usecase

import (
	"context"
	"errors"
	"testing"

	"tosika/pkg/captcha"
	"tosika/pkg/jwt"
	"tosika/pkg/logger"
	"tosika/services/auth/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(userID string) (*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockVerifier is a mock implementation of captcha.Verifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	args := m.Called(ctx, token, remoteIP)
	return args.Error(0)
}

func newUseCase() (AuthUseCase, *MockUserRepository, *MockVerifier) {
	userRepo := new(MockUserRepository)
	verifier := new(MockVerifier)
	uc := NewAuthUseCase(userRepo, jwt.NewService("test-secret"), verifier, logger.New())
	return uc, userRepo, verifier
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestRegister_Success(t *testing.T) {
	uc, userRepo, _ := newUseCase()

	userRepo.On("GetByEmail", "herizo@test.mg").Return(nil, errors.New("record not found"))
	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	user, token, err := uc.Register("herizo@test.mg", "Herizo", "password123", entity.RoleOwner)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.RoleOwner, user.Role)
	assert.Empty(t, user.Password)
	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, userRepo, _ := newUseCase()

	userRepo.On("GetByEmail", "herizo@test.mg").Return(&entity.User{Email: "herizo@test.mg"}, nil)

	_, _, err := uc.Register("herizo@test.mg", "Herizo", "password123", entity.RoleDonor)

	assert.EqualError(t, err, "user with this email already exists")
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	uc, userRepo, _ := newUseCase()

	_, _, err := uc.Register("herizo@test.mg", "Herizo", "password123", entity.RoleAdmin)

	assert.EqualError(t, err, "invalid role")
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	uc, userRepo, _ := newUseCase()

	stored := &entity.User{
		ID:       "user-1",
		Email:    "herizo@test.mg",
		Password: hashOf(t, "password123"),
		Role:     entity.RoleOwner,
		IsActive: true,
	}
	userRepo.On("GetByEmail", "herizo@test.mg").Return(stored, nil)

	user, token, err := uc.Login("herizo@test.mg", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.Password)

	claims, err := jwt.NewService("test-secret").ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "owner", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, userRepo, _ := newUseCase()

	stored := &entity.User{Email: "herizo@test.mg", Password: hashOf(t, "password123"), IsActive: true}
	userRepo.On("GetByEmail", "herizo@test.mg").Return(stored, nil)

	_, _, err := uc.Login("herizo@test.mg", "nope")

	assert.EqualError(t, err, "invalid credentials")
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	uc, userRepo, _ := newUseCase()

	stored := &entity.User{Email: "herizo@test.mg", Password: hashOf(t, "password123"), IsActive: false}
	userRepo.On("GetByEmail", "herizo@test.mg").Return(stored, nil)

	_, _, err := uc.Login("herizo@test.mg", "password123")

	assert.EqualError(t, err, "account is deactivated")
}

func TestUpdateProfile_MissingToken(t *testing.T) {
	uc, userRepo, verifier := newUseCase()

	verifier.On("Verify", mock.Anything, "", "1.2.3.4").Return(captcha.ErrTokenRequired)

	_, err := uc.UpdateProfile(context.Background(), "user-1", "New Name", "", "", "1.2.3.4")

	assert.ErrorIs(t, err, captcha.ErrTokenRequired)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	uc, userRepo, verifier := newUseCase()

	verifier.On("Verify", mock.Anything, "tok", "1.2.3.4").Return(nil)
	stored := &entity.User{ID: "user-1", Password: hashOf(t, "password123")}
	userRepo.On("GetByID", "user-1").Return(stored, nil)

	err := uc.ChangePassword(context.Background(), "user-1", "nope", "newpass456", "tok", "1.2.3.4")

	assert.EqualError(t, err, "current password is incorrect")
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestChangePassword_Success(t *testing.T) {
	uc, userRepo, verifier := newUseCase()

	verifier.On("Verify", mock.Anything, "tok", "1.2.3.4").Return(nil)
	stored := &entity.User{ID: "user-1", Password: hashOf(t, "password123")}
	userRepo.On("GetByID", "user-1").Return(stored, nil)
	userRepo.On("Update", mock.MatchedBy(func(u *entity.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("newpass456")) == nil
	})).Return(nil)

	err := uc.ChangePassword(context.Background(), "user-1", "password123", "newpass456", "tok", "1.2.3.4")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}
