package handler

import (
	"errors"
	"net/http"
	"strconv"

	"fanboard/internal/domain/post/service"
	"fanboard/pkg/response"
	"fanboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PostHandler 帖子处理器
type PostHandler struct {
	service service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// CreatePostInput 发帖输入
type CreatePostInput struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
	TeamIDs []uint `json:"teamIds"`
}

// UpdatePostInput 改帖输入，缺省字段保持不变
type UpdatePostInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	TeamIDs *[]uint `json:"teamIds"`
}

// CommentInput 评论输入
type CommentInput struct {
	Message string `json:"message" binding:"required"`
}

// GetPosts 帖子列表（含评论数/表情数）
// @Summary 帖子列表
// @Tags Post
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} utils.PageResult
// @Router /posts [get]
func (h *PostHandler) GetPosts(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)
	p.GetPageOffset()

	posts, total, err := h.service.GetPosts(p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{
		List:  posts,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// GetPost 帖子详情，读取即记录一次浏览
// @Summary 帖子详情
// @Tags Post
// @Param id path int true "帖子ID"
// @Success 200 {object} model.Post
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid post id")
		return
	}

	post, err := h.service.GetPost(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, post)
}

// GetPopular 热门帖子排行
// @Summary 热门帖子
// @Tags Post
// @Success 200 {array} model.PopularPost
// @Router /posts/popular [get]
func (h *PostHandler) GetPopular(c *gin.Context) {
	result, err := h.service.GetPopular(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, result)
}

// CreatePost 发帖
// @Summary 发帖
// @Tags Post
// @Accept json
// @Produce json
// @Param input body CreatePostInput true "帖子内容"
// @Success 200 {object} model.Post
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := utils.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthenticated, "Login required")
		return
	}

	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.CreatePost(userID, input.Title, input.Content, input.TeamIDs)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, post)
}

// UpdatePost 改帖（仅作者）
// @Summary 改帖
// @Tags Post
// @Accept json
// @Produce json
// @Param id path int true "帖子ID"
// @Param input body UpdatePostInput true "更新字段"
// @Success 200 {object} model.Post
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := utils.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthenticated, "Login required")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid post id")
		return
	}

	var input UpdatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.UpdatePost(userID, id, service.UpdatePostInput{
		Title:   input.Title,
		Content: input.Content,
		TeamIDs: input.TeamIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删帖（仅作者）
// @Summary 删帖
// @Tags Post
// @Param id path int true "帖子ID"
// @Success 200 {string} string "success"
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := utils.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthenticated, "Login required")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid post id")
		return
	}

	if err := h.service.DeletePost(userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, "success")
}

// GetPostsByTeam 某球队下的帖子
// @Summary 球队帖子列表
// @Tags Post
// @Param id path int true "球队ID"
// @Success 200 {array} model.PostWithCounts
// @Router /teams/{id}/posts [get]
func (h *PostHandler) GetPostsByTeam(c *gin.Context) {
	teamID, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid team id")
		return
	}

	posts, err := h.service.GetPostsByTeam(teamID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, posts)
}

// GetComments 评论列表
// @Summary 评论列表
// @Tags Comment
// @Param id path int true "帖子ID"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} utils.PageResult
// @Router /posts/{id}/comments [get]
func (h *PostHandler) GetComments(c *gin.Context) {
	postID, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid post id")
		return
	}

	var p utils.Pagination
	c.ShouldBindQuery(&p)
	p.GetPageOffset()

	comments, total, err := h.service.GetComments(postID, p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{
		List:  comments,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path int true "帖子ID"
// @Param input body CommentInput true "评论内容"
// @Success 200 {object} model.Comment
// @Router /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
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

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	comment, err := h.service.AddComment(userID, postID, input.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment 删除评论（仅作者）
// @Summary 删除评论
// @Tags Comment
// @Param id path int true "评论ID"
// @Success 200 {string} string "success"
// @Router /comments/{id} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	userID, ok := utils.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.ErrUnauthenticated, "Login required")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid comment id")
		return
	}

	if err := h.service.DeleteComment(userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, "success")
}

// respondServiceError 把业务错误映射到失败分类
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, response.ErrNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Error(c, http.StatusForbidden, response.ErrForbidden, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
