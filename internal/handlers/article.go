package handlers

import (
	"net/http"

	"github.com/Limkon/Netnope-sub000/internal/middleware"
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/multipart"
	"github.com/Limkon/Netnope-sub000/internal/services"
	"github.com/Limkon/Netnope-sub000/internal/utils"
	pkgvalidator "github.com/Limkon/Netnope-sub000/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ArticleHandler struct {
	articleService *services.ArticleService
	validator      *validator.Validate
}

func NewArticleHandler(articleService *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		// 文章状态的自定义校验规则注册在共享实例上
		validator: pkgvalidator.GetValidator(),
	}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	var req models.ArticleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}

	articles, pagination, err := h.articleService.GetArticles(sess, &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"articles":   articles,
		"pagination": pagination,
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	article, err := h.articleService.GetArticle(c.Param("id"), sess)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, article)
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	var req models.ArticleCreateRequest
	var upload *multipart.File

	if isMultipart(c) {
		form, err := readMultipart(c)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "请求体解析失败")
			return
		}
		req.Title = form.Fields["title"]
		req.Content = form.Fields["content"]
		req.Category = form.Fields["category"]
		req.Status = form.Fields["status"]
		upload = form.Files[AttachmentField]
	} else if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	// 验证请求参数
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	article, err := h.articleService.CreateArticle(sess, &req, upload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "创建成功", article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	var req models.ArticleUpdateRequest
	var upload *multipart.File

	if isMultipart(c) {
		form, err := readMultipart(c)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "请求体解析失败")
			return
		}
		req.Title = form.Fields["title"]
		req.Content = form.Fields["content"]
		req.Category = form.Fields["category"]
		req.Status = form.Fields["status"]
		req.RemoveAttachment = form.Fields["remove_attachment"] == "true"
		upload = form.Files[AttachmentField]
	} else if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	article, err := h.articleService.UpdateArticle(c.Param("id"), sess, &req, upload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "更新成功", article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	if err := h.articleService.DeleteArticle(c.Param("id"), sess); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
