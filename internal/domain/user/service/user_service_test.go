package service

import (
	"testing"

	"fanboard/internal/domain/user/model"
	"fanboard/internal/pkg/config"
	"fanboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByNickname(nickname string) (*model.User, error) {
	args := m.Called(nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	config.GlobalConfig.JWT.Secret = "test-secret"
	config.GlobalConfig.JWT.Expire = 24
	m.Run()
}

func TestRegister(t *testing.T) {
	t.Run("Registration success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "son7").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("GetByNickname", "Sonny").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

		user, err := service.Register("son7", "secret123", "Sonny")

		assert.NoError(t, err)
		assert.Equal(t, "son7", user.Username)
		// 密码只存哈希
		assert.NotEqual(t, "secret123", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "son7").Return(&model.User{ID: 1, Username: "son7"}, nil)

		_, err := service.Register("son7", "secret123", "Other")

		assert.ErrorIs(t, err, ErrUserExists)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Duplicate nickname", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "fresh").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("GetByNickname", "Sonny").Return(&model.User{ID: 1, Nickname: "Sonny"}, nil)

		_, err := service.Register("fresh", "secret123", "Sonny")

		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)

	t.Run("Login success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "son7").
			Return(&model.User{ID: 7, Username: "son7", Password: string(hash)}, nil)

		token, err := service.Login("son7", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := utils.ParseToken(token)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "son7").
			Return(&model.User{ID: 7, Username: "son7", Password: string(hash)}, nil)

		_, err := service.Login("son7", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown username looks like bad credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Login("ghost", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("Empty fields keep current values", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		existing := &model.User{ID: 7, Username: "son7", Nickname: "Sonny", Avatar: "old.png"}
		mockRepo.On("GetByID", uint(7)).Return(existing, nil)
		mockRepo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

		user, err := service.UpdateProfile(7, "", "")

		assert.NoError(t, err)
		assert.Equal(t, "Sonny", user.Nickname)
		assert.Equal(t, "old.png", user.Avatar)
	})

	t.Run("Nickname change checks uniqueness", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		existing := &model.User{ID: 7, Username: "son7", Nickname: "Sonny"}
		mockRepo.On("GetByID", uint(7)).Return(existing, nil)
		mockRepo.On("GetByNickname", "Taken").Return(&model.User{ID: 8, Nickname: "Taken"}, nil)

		_, err := service.UpdateProfile(7, "Taken", "")

		assert.ErrorIs(t, err, ErrUserExists)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})
}
