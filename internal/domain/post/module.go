package post

import (
	"time"

	"fanboard/internal/domain/post/handler"
	"fanboard/internal/domain/post/repository"
	"fanboard/internal/domain/post/service"
	teamRepository "fanboard/internal/domain/team/repository"
	teamService "fanboard/internal/domain/team/service"
	"fanboard/internal/pkg/config"
	"fanboard/internal/pkg/middleware"
	"fanboard/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PostModule 帖子模块
type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	// 在 team 之后初始化，发帖时要解析球队
	return 10
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	feedCfg := config.GlobalConfig.Feed

	postRepo := repository.NewPostRepository(ctx.DB)
	teams := teamService.NewTeamService(teamRepository.NewTeamRepository(ctx.DB))
	postService := service.NewPostService(postRepo, teams, ctx.Cache, service.FeedOptions{
		Window:   time.Duration(feedCfg.PopularWindowMinutes) * time.Minute,
		Limit:    feedCfg.PopularLimit,
		CacheTTL: time.Duration(feedCfg.CacheTTLSeconds) * time.Second,
	})
	postHandler := handler.NewPostHandler(postService)

	setupRoutes(ctx.Router, postHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PostHandler) {
	g := r.Group("/posts")

	// 公开读
	g.GET("", h.GetPosts)
	g.GET("/popular", h.GetPopular)
	g.GET("/:id", h.GetPost)
	g.GET("/:id/comments", h.GetComments)

	// 需要登录
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.CreatePost)
		auth.PUT("/:id", h.UpdatePost)
		auth.DELETE("/:id", h.DeletePost)
		auth.POST("/:id/comments", h.AddComment)
	}

	r.GET("/teams/:id/posts", h.GetPostsByTeam)
	r.DELETE("/comments/:id", middleware.AuthMiddleware(), h.DeleteComment)
}
