package team

import (
	"fanboard/internal/domain/team/handler"
	"fanboard/internal/domain/team/repository"
	"fanboard/internal/domain/team/service"
	"fanboard/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// TeamModule 球队模块
type TeamModule struct{}

func init() {
	registry.Register(&TeamModule{})
}

func (m *TeamModule) Name() string {
	return "team"
}

func (m *TeamModule) Priority() int {
	return 5
}

func (m *TeamModule) Init(ctx *registry.ModuleContext) error {
	teamRepo := repository.NewTeamRepository(ctx.DB)
	teamService := service.NewTeamService(teamRepo)
	teamHandler := handler.NewTeamHandler(teamService)

	setupRoutes(ctx.Router, teamHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.TeamHandler) {
	g := r.Group("/teams")

	g.GET("", h.GetTeams)
	g.GET("/:id", h.GetTeam)
	// /teams/:id/posts 由 post 模块注册，它依赖帖子聚合查询
}
