package repository

import (
	"fanboard/internal/domain/emotion/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmotionRepository 接口定义
type EmotionRepository interface {
	GetTypes() ([]model.EmotionType, error)
	GetTypeByID(id uint) (*model.EmotionType, error)

	// DeleteByTriple 按 (user, post, type) 精确删除，返回删除行数
	DeleteByTriple(userID, postID, typeID uint) (int64, error)
	// InsertIgnoreConflict 插入表情，撞唯一索引时什么都不做
	// 返回是否真的写入了新行
	InsertIgnoreConflict(emotion *model.Emotion) (bool, error)

	CountsByPost(postID uint) ([]model.EmotionCount, error)
	TypeIDsByUserAndPost(userID, postID uint) ([]uint, error)
}

type emotionRepository struct {
	db *gorm.DB
}

func NewEmotionRepository(db *gorm.DB) EmotionRepository {
	return &emotionRepository{db: db}
}

func (r *emotionRepository) GetTypes() ([]model.EmotionType, error) {
	var types []model.EmotionType
	if err := r.db.Order("id asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *emotionRepository) GetTypeByID(id uint) (*model.EmotionType, error) {
	var t model.EmotionType
	if err := r.db.Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *emotionRepository) DeleteByTriple(userID, postID, typeID uint) (int64, error) {
	res := r.db.Where("user_id = ? AND post_id = ? AND emotion_type_id = ?", userID, postID, typeID).
		Delete(&model.Emotion{})
	return res.RowsAffected, res.Error
}

func (r *emotionRepository) InsertIgnoreConflict(emotion *model.Emotion) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "post_id"},
			{Name: "emotion_type_id"},
		},
		DoNothing: true,
	}).Create(emotion)
	return res.RowsAffected > 0, res.Error
}

func (r *emotionRepository) CountsByPost(postID uint) ([]model.EmotionCount, error) {
	var counts []model.EmotionCount
	err := r.db.Model(&model.Emotion{}).
		Select("emotions.emotion_type_id, emotion_types.name, COUNT(emotions.id) AS count").
		Joins("JOIN emotion_types ON emotion_types.id = emotions.emotion_type_id").
		Where("emotions.post_id = ?", postID).
		Group("emotions.emotion_type_id, emotion_types.name").
		Order("emotions.emotion_type_id asc").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *emotionRepository) TypeIDsByUserAndPost(userID, postID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Emotion{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Order("emotion_type_id asc").
		Pluck("emotion_type_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
