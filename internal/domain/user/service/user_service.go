package service

import (
	"errors"

	"fanboard/internal/domain/user/model"
	"fanboard/internal/domain/user/repository"
	"fanboard/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 业务错误
var (
	ErrUserExists         = errors.New("username or nickname already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService 用户服务接口
type UserService interface {
	Register(username, password, nickname string) (*model.User, error)
	Login(username, password string) (string, error)
	GetUser(id uint) (*model.User, error)
	UpdateProfile(id uint, nickname, avatar string) (*model.User, error)
}

// userService 实现
type userService struct {
	repo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register 注册新用户
func (s *userService) Register(username, password, nickname string) (*model.User, error) {
	// 用户名/昵称唯一性检查，数据库唯一索引兜底
	if _, err := s.repo.GetByUsername(username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByNickname(nickname); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Nickname: nickname,
		Password: string(hash),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 登录并签发 Token
func (s *userService) Login(username, password string) (string, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, _, err := utils.GenerateToken(user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetUser 获取用户信息
func (s *userService) GetUser(id uint) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile 更新昵称/头像，空字段保持不变
func (s *userService) UpdateProfile(id uint, nickname, avatar string) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if nickname != "" && nickname != user.Nickname {
		if _, err := s.repo.GetByNickname(nickname); err == nil {
			return nil, ErrUserExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Nickname = nickname
	}
	if avatar != "" {
		user.Avatar = avatar
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
