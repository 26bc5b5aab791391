package model

import "time"

// Team 球队模型
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	League    string    `gorm:"index;size:100" json:"league"`
	Emblem    string    `json:"emblem,omitempty"` // 队徽图片 URL
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Team) TableName() string {
	return "teams"
}
