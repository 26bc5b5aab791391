package emotion

import (
	"fanboard/internal/domain/emotion/handler"
	"fanboard/internal/domain/emotion/repository"
	"fanboard/internal/domain/emotion/service"
	"fanboard/internal/pkg/middleware"
	"fanboard/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// EmotionModule 表情模块
type EmotionModule struct{}

func init() {
	registry.Register(&EmotionModule{})
}

func (m *EmotionModule) Name() string {
	return "emotion"
}

func (m *EmotionModule) Priority() int {
	return 20
}

func (m *EmotionModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewEmotionRepository(ctx.DB)
	svc := service.NewEmotionService(repo, ctx.Cache)
	h := handler.NewEmotionHandler(svc)

	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.EmotionHandler) {
	r.GET("/emotions/types", h.GetTypes)

	g := r.Group("/posts/:id/emotions")
	{
		g.GET("/counts", h.GetCounts)
		// 匿名可读，带 Token 时返回本人状态
		g.GET("/status", middleware.OptionalAuthMiddleware(), h.GetUserStatus)
		g.POST("/toggle", middleware.AuthMiddleware(), h.Toggle)
	}
}
