package service

import (
	"context"
	"errors"
	"time"

	"fanboard/internal/domain/emotion/model"
	"fanboard/internal/domain/emotion/repository"
	"fanboard/pkg/cache"

	"gorm.io/gorm"
)

// 切换结果
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// ErrEmotionTypeNotFound 表情种类不存在
var ErrEmotionTypeNotFound = errors.New("emotion type not found")

const (
	typesCacheKey = "emotion:types"
	typesCacheTTL = time.Hour
)

// EmotionService 表情服务接口
type EmotionService interface {
	GetTypes(ctx context.Context) ([]model.EmotionType, error)
	// Toggle 切换表情，返回 ActionAdded 或 ActionRemoved
	Toggle(userID, postID, typeID uint) (string, error)
	GetCounts(postID uint) ([]model.EmotionCount, error)
	// GetUserStatus 匿名调用（authed=false）返回空列表，不报错
	GetUserStatus(userID uint, authed bool, postID uint) ([]model.UserEmotionStatus, error)
}

type emotionService struct {
	repo  repository.EmotionRepository
	cache cache.CacheService // 可为 nil，测试里不挂缓存
}

func NewEmotionService(repo repository.EmotionRepository, cache cache.CacheService) EmotionService {
	return &emotionService{repo: repo, cache: cache}
}

func (s *emotionService) GetTypes(ctx context.Context) ([]model.EmotionType, error) {
	if s.cache != nil {
		var cached []model.EmotionType
		if err := s.cache.Get(ctx, typesCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	types, err := s.repo.GetTypes()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, typesCacheKey, types, typesCacheTTL)
	}
	return types, nil
}

// Toggle 的两步都是原子语句：先按三元组条件删除，删到了就是取消；
// 没删到则带唯一索引冲突保护插入。并发重复请求最终收敛到至多一行，
// 插入撞到冲突说明并发请求已经加上了同一个表情，结果仍按 added 返回。
func (s *emotionService) Toggle(userID, postID, typeID uint) (string, error) {
	if _, err := s.repo.GetTypeByID(typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrEmotionTypeNotFound
		}
		return "", err
	}

	deleted, err := s.repo.DeleteByTriple(userID, postID, typeID)
	if err != nil {
		return "", err
	}
	if deleted > 0 {
		return ActionRemoved, nil
	}

	_, err = s.repo.InsertIgnoreConflict(&model.Emotion{
		UserID:        userID,
		PostID:        postID,
		EmotionTypeID: typeID,
	})
	if err != nil {
		return "", err
	}
	return ActionAdded, nil
}

func (s *emotionService) GetCounts(postID uint) ([]model.EmotionCount, error) {
	return s.repo.CountsByPost(postID)
}

func (s *emotionService) GetUserStatus(userID uint, authed bool, postID uint) ([]model.UserEmotionStatus, error) {
	result := []model.UserEmotionStatus{}
	if !authed {
		return result, nil
	}

	ids, err := s.repo.TypeIDsByUserAndPost(userID, postID)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		result = append(result, model.UserEmotionStatus{EmotionTypeID: id, Voted: true})
	}
	return result, nil
}
