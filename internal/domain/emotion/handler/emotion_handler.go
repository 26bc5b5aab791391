package handler

import (
	"errors"
	"net/http"
	"strconv"

	"fanboard/internal/domain/emotion/service"
	"fanboard/pkg/metrics"
	"fanboard/pkg/response"
	"fanboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

// EmotionHandler 表情处理器
type EmotionHandler struct {
	service service.EmotionService
}

func NewEmotionHandler(s service.EmotionService) *EmotionHandler {
	return &EmotionHandler{service: s}
}

// ToggleInput 切换表情输入
type ToggleInput struct {
	EmotionTypeID uint `json:"emotionTypeId" binding:"required"`
}

// GetTypes 获取所有表情种类
// @Summary 表情种类列表
// @Tags Emotion
// @Produce json
// @Success 200 {array} model.EmotionType
// @Router /emotions/types [get]
func (h *EmotionHandler) GetTypes(c *gin.Context) {
	types, err := h.service.GetTypes(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, types)
}

// Toggle 切换表情
// @Summary 对帖子添加/取消表情
// @Tags Emotion
// @Accept json
// @Produce json
// @Param id path int true "帖子ID"
// @Param input body ToggleInput true "表情种类"
// @Success 200 {object} map[string]string
// @Router /posts/{id}/emotions/toggle [post]
func (h *EmotionHandler) Toggle(c *gin.Context) {
	userID, ok := utils.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthenticated, "Login required")
		return
	}

	postID, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid post id")
		return
	}

	var input ToggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	action, err := h.service.Toggle(userID, postID, input.EmotionTypeID)
	if err != nil {
		if errors.Is(err, service.ErrEmotionTypeNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	metrics.Default.RecordEmotionToggle(action)
	response.Success(c, gin.H{"action": action})
}

// GetCounts 获取单帖表情分布
// @Summary 帖子表情计数
// @Tags Emotion
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {array} model.EmotionCount
// @Router /posts/{id}/emotions/counts [get]
func (h *EmotionHandler) GetCounts(c *gin.Context) {
	postID, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid post id")
		return
	}

	counts, err := h.service.GetCounts(postID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, counts)
}

// GetUserStatus 获取当前用户在帖子上的表情状态，匿名返回空列表
// @Summary 当前用户表情状态
// @Tags Emotion
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {array} model.UserEmotionStatus
// @Router /posts/{id}/emotions/status [get]
func (h *EmotionHandler) GetUserStatus(c *gin.Context) {
	postID, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid post id")
		return
	}

	userID, authed := utils.GetUserID(c)
	status, err := h.service.GetUserStatus(userID, authed, postID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, status)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
