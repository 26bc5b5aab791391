package model

import (
	"time"

	teamModel "fanboard/internal/domain/team/model"
	userModel "fanboard/internal/domain/user/model"
)

// Post 帖子模型
type Post struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Title     string           `gorm:"index;size:200" json:"title"`
	Content   string           `gorm:"type:text" json:"content"`
	ViewCount uint             `gorm:"column:view_count;default:0" json:"viewCount"` // 只增不减
	AuthorID  uint             `gorm:"index" json:"authorId"`
	Author    *userModel.User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Teams     []teamModel.Team `gorm:"many2many:post_teams;" json:"teams,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}

// Comment 评论模型
type Comment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Message   string          `gorm:"type:text" json:"message"`
	AuthorID  uint            `gorm:"index" json:"authorId"`
	Author    *userModel.User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PostID    uint            `gorm:"index" json:"postId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

// PostViewLog 浏览日志，只追加，不更新不删除
type PostViewLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   uint      `gorm:"index:idx_view_post_time" json:"postId"`
	ViewedAt time.Time `gorm:"index:idx_view_post_time" json:"viewedAt"`
}

func (PostViewLog) TableName() string {
	return "post_view_logs"
}

// PostWithCounts 列表项：帖子 + 派生计数
type PostWithCounts struct {
	Post
	CommentCount int64 `json:"commentCount"`
	EmotionCount int64 `json:"emotionCount"`
}

// PopularPost 热门排行项
type PopularPost struct {
	PostID      uint   `gorm:"column:id" json:"postId"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	RecentViews int64  `gorm:"column:recent_views" json:"recentViews"`
}
