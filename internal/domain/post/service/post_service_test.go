package service

import (
	"context"
	"testing"
	"time"

	"fanboard/internal/domain/post/model"
	teamModel "fanboard/internal/domain/team/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockPostRepository is a mock of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id uint) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) GetDetailAndRecordView(id uint) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) GetListWithCounts(offset, limit int) ([]model.PostWithCounts, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]model.PostWithCounts), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) GetListByTeam(teamID uint) ([]model.PostWithCounts, error) {
	args := m.Called(teamID)
	return args.Get(0).([]model.PostWithCounts), args.Error(1)
}

func (m *MockPostRepository) GetPopular(window time.Duration, limit int) ([]model.PopularPost, error) {
	args := m.Called(window, limit)
	return args.Get(0).([]model.PopularPost), args.Error(1)
}

func (m *MockPostRepository) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) ReplaceTeams(post *model.Post, teams []teamModel.Team) error {
	args := m.Called(post, teams)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) CreateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockPostRepository) GetCommentByID(id uint) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockPostRepository) GetCommentsByPostID(postID uint, offset, limit int) ([]model.Comment, int64, error) {
	args := m.Called(postID, offset, limit)
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) DeleteComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

// MockTeamService is a mock of TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) GetTeams(page, limit int) ([]teamModel.Team, int64, error) {
	args := m.Called(page, limit)
	return args.Get(0).([]teamModel.Team), args.Get(1).(int64), args.Error(2)
}

func (m *MockTeamService) GetTeam(id uint) (*teamModel.Team, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *MockTeamService) ResolveTeams(ids []uint) ([]teamModel.Team, error) {
	args := m.Called(ids)
	return args.Get(0).([]teamModel.Team), args.Error(1)
}

func newTestService(repo *MockPostRepository, teams *MockTeamService) PostService {
	return NewPostService(repo, teams, nil, FeedOptions{Window: time.Hour, Limit: 5})
}

func TestCreatePost(t *testing.T) {
	t.Run("Unknown team IDs are skipped", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		// 三个ID只有一个真实存在
		resolved := []teamModel.Team{{ID: 2, Name: "FC Seoul"}}
		mockTeams.On("ResolveTeams", []uint{1, 2, 3}).Return(resolved, nil)
		mockRepo.On("Create", mock.AnythingOfType("*model.Post")).Return(nil)

		post, err := service.CreatePost(7, "title", "content", []uint{1, 2, 3})

		assert.NoError(t, err)
		assert.Equal(t, uint(7), post.AuthorID)
		assert.Len(t, post.Teams, 1)
		mockTeams.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetPost(t *testing.T) {
	t.Run("Detail fetch records a view", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		mockRepo.On("GetDetailAndRecordView", uint(1)).
			Return(&model.Post{ID: 1, Title: "t", ViewCount: 10}, nil)

		post, err := service.GetPost(1)

		assert.NoError(t, err)
		assert.Equal(t, uint(10), post.ViewCount)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing post maps to ErrPostNotFound", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		mockRepo.On("GetDetailAndRecordView", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetPost(99)

		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestUpdatePost(t *testing.T) {
	title := "new title"

	t.Run("Partial update keeps untouched fields", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		existing := &model.Post{ID: 1, Title: "old title", Content: "old content", AuthorID: 7}
		mockRepo.On("GetByID", uint(1)).Return(existing, nil)
		mockRepo.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)

		post, err := service.UpdatePost(7, 1, UpdatePostInput{Title: &title})

		assert.NoError(t, err)
		assert.Equal(t, "new title", post.Title)
		assert.Equal(t, "old content", post.Content)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Non-owner gets ErrNotOwner", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		existing := &model.Post{ID: 1, AuthorID: 7}
		mockRepo.On("GetByID", uint(1)).Return(existing, nil)

		_, err := service.UpdatePost(8, 1, UpdatePostInput{Title: &title})

		assert.ErrorIs(t, err, ErrNotOwner)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("Missing post gets ErrPostNotFound", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		mockRepo.On("GetByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.UpdatePost(7, 99, UpdatePostInput{Title: &title})

		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("Team list replacement", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		existing := &model.Post{ID: 1, AuthorID: 7}
		resolved := []teamModel.Team{{ID: 3, Name: "Jeonbuk"}}
		teamIDs := []uint{3}

		mockRepo.On("GetByID", uint(1)).Return(existing, nil)
		mockRepo.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)
		mockTeams.On("ResolveTeams", teamIDs).Return(resolved, nil)
		mockRepo.On("ReplaceTeams", mock.AnythingOfType("*model.Post"), resolved).Return(nil)

		post, err := service.UpdatePost(7, 1, UpdatePostInput{TeamIDs: &teamIDs})

		assert.NoError(t, err)
		assert.Len(t, post.Teams, 1)
		mockRepo.AssertExpectations(t)
		mockTeams.AssertExpectations(t)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("Owner can delete", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		existing := &model.Post{ID: 1, AuthorID: 7}
		mockRepo.On("GetByID", uint(1)).Return(existing, nil)
		mockRepo.On("Delete", existing).Return(nil)

		err := service.DeletePost(7, 1)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Non-owner cannot delete", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		existing := &model.Post{ID: 1, AuthorID: 7}
		mockRepo.On("GetByID", uint(1)).Return(existing, nil)

		err := service.DeletePost(8, 1)

		assert.ErrorIs(t, err, ErrNotOwner)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
	})
}

func TestGetPopular(t *testing.T) {
	t.Run("Delegates window and limit", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		ranked := []model.PopularPost{
			{PostID: 2, RecentViews: 9},
			{PostID: 5, RecentViews: 3},
		}
		mockRepo.On("GetPopular", time.Hour, 5).Return(ranked, nil)

		result, err := service.GetPopular(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, ranked, result)
		mockRepo.AssertExpectations(t)
	})
}

func TestAddComment(t *testing.T) {
	t.Run("Comment on existing post", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		mockRepo.On("GetByID", uint(1)).Return(&model.Post{ID: 1}, nil)
		mockRepo.On("CreateComment", mock.AnythingOfType("*model.Comment")).Return(nil)

		comment, err := service.AddComment(7, 1, "nice goal")

		assert.NoError(t, err)
		assert.Equal(t, uint(1), comment.PostID)
		assert.Equal(t, "nice goal", comment.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Comment on missing post", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		mockRepo.On("GetByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.AddComment(7, 99, "hello")

		assert.ErrorIs(t, err, ErrPostNotFound)
		mockRepo.AssertNotCalled(t, "CreateComment", mock.Anything)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("Owner can delete", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		comment := &model.Comment{ID: 3, AuthorID: 7, PostID: 1}
		mockRepo.On("GetCommentByID", uint(3)).Return(comment, nil)
		mockRepo.On("DeleteComment", comment).Return(nil)

		err := service.DeleteComment(7, 3)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Non-owner cannot delete", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		comment := &model.Comment{ID: 3, AuthorID: 7, PostID: 1}
		mockRepo.On("GetCommentByID", uint(3)).Return(comment, nil)

		err := service.DeleteComment(8, 3)

		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("Missing comment", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockTeams := new(MockTeamService)
		service := newTestService(mockRepo, mockTeams)

		mockRepo.On("GetCommentByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		err := service.DeleteComment(7, 99)

		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}
