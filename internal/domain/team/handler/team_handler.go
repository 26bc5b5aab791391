package handler

import (
	"errors"
	"net/http"
	"strconv"

	"fanboard/internal/domain/team/service"
	"fanboard/pkg/response"
	"fanboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TeamHandler 球队处理器
type TeamHandler struct {
	service service.TeamService
}

func NewTeamHandler(s service.TeamService) *TeamHandler {
	return &TeamHandler{service: s}
}

// GetTeams 获取球队列表
// @Summary 获取球队列表
// @Tags Team
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} utils.PageResult
// @Router /teams [get]
func (h *TeamHandler) GetTeams(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)
	p.GetPageOffset()

	teams, total, err := h.service.GetTeams(p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{
		List:  teams,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// GetTeam 获取球队详情
// @Summary 获取球队详情
// @Tags Team
// @Param id path int true "球队ID"
// @Success 200 {object} model.Team
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid team id")
		return
	}

	team, err := h.service.GetTeam(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, team)
}
