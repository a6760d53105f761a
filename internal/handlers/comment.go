package handlers

import (
	"net/http"

	"github.com/Limkon/Netnope-sub000/internal/middleware"
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/services"
	"github.com/Limkon/Netnope-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CommentHandler struct {
	commentService *services.CommentService
	validator      *validator.Validate
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
	}
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	comments, err := h.commentService.GetComments(c.Param("id"), sess)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, gin.H{"comments": comments})
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	var req models.CommentCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	comment, err := h.commentService.CreateComment(c.Param("id"), sess, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "评论成功", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	if err := h.commentService.DeleteComment(c.Param("id"), sess); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
