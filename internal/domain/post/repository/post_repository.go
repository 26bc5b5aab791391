package repository

import (
	"time"

	emotionModel "fanboard/internal/domain/emotion/model"
	"fanboard/internal/domain/post/model"
	teamModel "fanboard/internal/domain/team/model"

	"gorm.io/gorm"
)

// PostRepository 接口定义
type PostRepository interface {
	Create(post *model.Post) error
	// GetByID 裸查询，不带关联，用于权限检查
	GetByID(id uint) (*model.Post, error)
	// GetDetailAndRecordView 读取详情并记录一次浏览（日志追加 + 计数自增），同一事务
	GetDetailAndRecordView(id uint) (*model.Post, error)
	GetListWithCounts(offset, limit int) ([]model.PostWithCounts, int64, error)
	GetListByTeam(teamID uint) ([]model.PostWithCounts, error)
	GetPopular(window time.Duration, limit int) ([]model.PopularPost, error)
	Update(post *model.Post) error
	ReplaceTeams(post *model.Post, teams []teamModel.Team) error
	Delete(post *model.Post) error

	CreateComment(comment *model.Comment) error
	GetCommentByID(id uint) (*model.Comment, error)
	GetCommentsByPostID(postID uint, offset, limit int) ([]model.Comment, int64, error)
	DeleteComment(comment *model.Comment) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// --- Post ---

func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetDetailAndRecordView(id uint) (*model.Post, error) {
	var post model.Post

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Author").Preload("Teams").Where("id = ?", id).First(&post).Error; err != nil {
			return err
		}

		if err := tx.Create(&model.PostViewLog{PostID: id, ViewedAt: time.Now()}).Error; err != nil {
			return err
		}

		// 相对自增，避免并发读数时丢更新
		return tx.Model(&model.Post{}).Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}

	// 事务已提交，响应返回自增后的值
	post.ViewCount++
	return &post, nil
}

func (r *postRepository) GetListWithCounts(offset, limit int) ([]model.PostWithCounts, int64, error) {
	var total int64
	if err := r.db.Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	if err := r.db.Preload("Author").Order("id desc").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	result, err := r.attachCounts(posts)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postRepository) GetListByTeam(teamID uint) ([]model.PostWithCounts, error) {
	var posts []model.Post
	err := r.db.Preload("Author").Preload("Teams").
		Joins("JOIN post_teams ON post_teams.post_id = posts.id").
		Where("post_teams.team_id = ?", teamID).
		Order("posts.id desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return r.attachCounts(posts)
}

// attachCounts 批量补齐评论数/表情数，整页两条分组查询，不做逐行查询
func (r *postRepository) attachCounts(posts []model.Post) ([]model.PostWithCounts, error) {
	result := make([]model.PostWithCounts, len(posts))
	if len(posts) == 0 {
		return result, nil
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		result[i] = model.PostWithCounts{Post: p}
	}

	type rowCount struct {
		PostID uint
		Cnt    int64
	}

	var commentCounts []rowCount
	err := r.db.Model(&model.Comment{}).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&commentCounts).Error
	if err != nil {
		return nil, err
	}

	var emotionCounts []rowCount
	err = r.db.Model(&emotionModel.Emotion{}).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&emotionCounts).Error
	if err != nil {
		return nil, err
	}

	byComment := make(map[uint]int64, len(commentCounts))
	for _, c := range commentCounts {
		byComment[c.PostID] = c.Cnt
	}
	byEmotion := make(map[uint]int64, len(emotionCounts))
	for _, c := range emotionCounts {
		byEmotion[c.PostID] = c.Cnt
	}

	// 没有命中的帖子保持 0
	for i := range result {
		result[i].CommentCount = byComment[result[i].ID]
		result[i].EmotionCount = byEmotion[result[i].ID]
	}
	return result, nil
}

func (r *postRepository) GetPopular(window time.Duration, limit int) ([]model.PopularPost, error) {
	since := time.Now().Add(-window)

	var result []model.PopularPost
	// 窗口条件放在 ON 里，零浏览的帖子以 0 参与排序
	// 相同计数之间的顺序不保证
	err := r.db.Table("posts").
		Select("posts.id, posts.title, posts.content, COUNT(post_view_logs.id) AS recent_views").
		Joins("LEFT JOIN post_view_logs ON post_view_logs.post_id = posts.id AND post_view_logs.viewed_at >= ?", since).
		Group("posts.id").
		Order("recent_views desc").
		Limit(limit).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update 只回写标题和正文。view_count 只走浏览路径的相对自增，
// 整行回写会把持有旧快照期间发生的浏览清掉
func (r *postRepository) Update(post *model.Post) error {
	return r.db.Model(post).Select("title", "content").Updates(post).Error
}

func (r *postRepository) ReplaceTeams(post *model.Post, teams []teamModel.Team) error {
	return r.db.Model(post).Association("Teams").Replace(teams)
}

func (r *postRepository) Delete(post *model.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&emotionModel.Emotion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&model.PostViewLog{}).Error; err != nil {
			return err
		}
		if err := tx.Model(post).Association("Teams").Clear(); err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

// --- Comment ---

func (r *postRepository) CreateComment(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *postRepository) GetCommentByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *postRepository) GetCommentsByPostID(postID uint, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	query := r.db.Model(&model.Comment{}).Where("post_id = ?", postID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Author").Order("id desc").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *postRepository) DeleteComment(comment *model.Comment) error {
	return r.db.Delete(comment).Error
}
