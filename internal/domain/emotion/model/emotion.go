package model

import "time"

// EmotionType 表情种类，基本是种子数据
type EmotionType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:50" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (EmotionType) TableName() string {
	return "emotion_types"
}

// Emotion 表情记录：一个用户对一个帖子同一种表情最多一条
type Emotion struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex:idx_emotion_user_post_type" json:"userId"`
	PostID        uint      `gorm:"uniqueIndex:idx_emotion_user_post_type" json:"postId"`
	EmotionTypeID uint      `gorm:"uniqueIndex:idx_emotion_user_post_type" json:"emotionTypeId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Emotion) TableName() string {
	return "emotions"
}

// EmotionCount 单帖表情分布项，数量为 0 的种类不出现
type EmotionCount struct {
	EmotionTypeID uint   `json:"emotionTypeId"`
	Name          string `json:"name"`
	Count         int64  `json:"count"`
}

// UserEmotionStatus 当前用户在单帖上的表情状态
type UserEmotionStatus struct {
	EmotionTypeID uint `json:"emotionTypeId"`
	Voted         bool `json:"voted"`
}
