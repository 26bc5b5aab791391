package service

import (
	"context"
	"errors"
	"time"

	"fanboard/internal/domain/post/model"
	"fanboard/internal/domain/post/repository"
	teamService "fanboard/internal/domain/team/service"
	"fanboard/pkg/cache"
	"fanboard/pkg/metrics"

	"gorm.io/gorm"
)

// 业务错误
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	// ErrNotOwner 资源存在但调用者不是作者，与 not found 区分开
	ErrNotOwner = errors.New("caller is not the resource owner")
)

const popularCacheKey = "feed:popular"

// FeedOptions 热门排行参数
type FeedOptions struct {
	Window   time.Duration // 统计窗口
	Limit    int           // 返回条数
	CacheTTL time.Duration // 结果缓存时长，0 表示不缓存
}

// UpdatePostInput 部分更新：nil 字段保持不变
type UpdatePostInput struct {
	Title   *string
	Content *string
	TeamIDs *[]uint
}

// PostService 帖子服务接口
type PostService interface {
	CreatePost(authorID uint, title, content string, teamIDs []uint) (*model.Post, error)
	GetPosts(page, limit int) ([]model.PostWithCounts, int64, error)
	// GetPost 读取详情，同时记录一次浏览
	GetPost(id uint) (*model.Post, error)
	UpdatePost(callerID, postID uint, input UpdatePostInput) (*model.Post, error)
	DeletePost(callerID, postID uint) error
	GetPostsByTeam(teamID uint) ([]model.PostWithCounts, error)
	GetPopular(ctx context.Context) ([]model.PopularPost, error)

	AddComment(authorID, postID uint, message string) (*model.Comment, error)
	GetComments(postID uint, page, limit int) ([]model.Comment, int64, error)
	DeleteComment(callerID, commentID uint) error
}

type postService struct {
	repo  repository.PostRepository
	teams teamService.TeamService
	cache cache.CacheService // 可为 nil
	feed  FeedOptions
}

func NewPostService(repo repository.PostRepository, teams teamService.TeamService, cache cache.CacheService, feed FeedOptions) PostService {
	return &postService{repo: repo, teams: teams, cache: cache, feed: feed}
}

func (s *postService) CreatePost(authorID uint, title, content string, teamIDs []uint) (*model.Post, error) {
	// 未知的球队ID静默跳过，不报错
	teams, err := s.teams.ResolveTeams(teamIDs)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		Teams:    teams,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetPosts(page, limit int) ([]model.PostWithCounts, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetListWithCounts(offset, limit)
}

func (s *postService) GetPost(id uint) (*model.Post, error) {
	post, err := s.repo.GetDetailAndRecordView(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	metrics.Default.RecordPostView()
	return post, nil
}

func (s *postService) UpdatePost(callerID, postID uint, input UpdatePostInput) (*model.Post, error) {
	post, err := s.ownedPost(callerID, postID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if err := s.repo.Update(post); err != nil {
		return nil, err
	}

	if input.TeamIDs != nil {
		teams, err := s.teams.ResolveTeams(*input.TeamIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTeams(post, teams); err != nil {
			return nil, err
		}
		post.Teams = teams
	}

	return post, nil
}

func (s *postService) DeletePost(callerID, postID uint) error {
	post, err := s.ownedPost(callerID, postID)
	if err != nil {
		return err
	}
	return s.repo.Delete(post)
}

func (s *postService) GetPostsByTeam(teamID uint) ([]model.PostWithCounts, error) {
	return s.repo.GetListByTeam(teamID)
}

func (s *postService) GetPopular(ctx context.Context) ([]model.PopularPost, error) {
	if s.cache != nil && s.feed.CacheTTL > 0 {
		var cached []model.PopularPost
		if err := s.cache.Get(ctx, popularCacheKey, &cached); err == nil {
			metrics.Default.RecordCacheHit("popular")
			return cached, nil
		}
		metrics.Default.RecordCacheMiss("popular")
	}

	result, err := s.repo.GetPopular(s.feed.Window, s.feed.Limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.feed.CacheTTL > 0 {
		_ = s.cache.Set(ctx, popularCacheKey, result, s.feed.CacheTTL)
	}
	return result, nil
}

// ownedPost 取帖子并检查作者，查无此帖和非作者是两种错误
func (s *postService) ownedPost(callerID, postID uint) (*model.Post, error) {
	post, err := s.repo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, ErrNotOwner
	}
	return post, nil
}

// --- Comment ---

func (s *postService) AddComment(authorID, postID uint, message string) (*model.Comment, error) {
	// 帖子必须存在
	if _, err := s.repo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		Message:  message,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *postService) GetComments(postID uint, page, limit int) ([]model.Comment, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetCommentsByPostID(postID, offset, limit)
}

func (s *postService) DeleteComment(callerID, commentID uint) error {
	comment, err := s.repo.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != callerID {
		return ErrNotOwner
	}
	return s.repo.DeleteComment(comment)
}
