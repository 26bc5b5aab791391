package model

import "time"

// User 用户模型
// 注册来源是外部账号体系，这里只保留社区需要的字段
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50" json:"username"`
	Nickname  string    `gorm:"uniqueIndex;size:50" json:"nickname"`
	Avatar    string    `json:"avatar,omitempty"`
	Password  string    `json:"-"` // 密码不返回给前端
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
