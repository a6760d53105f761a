package handlers

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/Limkon/Netnope-sub000/internal/middleware"
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/render"
	"github.com/Limkon/Netnope-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PageHandler 渲染 HTML 页面。页面只是展示层，
// 数据操作都走 API。
type PageHandler struct {
	renderer       render.Renderer
	articleService *services.ArticleService
}

func NewPageHandler(renderer render.Renderer, articleService *services.ArticleService) *PageHandler {
	return &PageHandler{
		renderer:       renderer,
		articleService: articleService,
	}
}

// Index 首页，列出当前身份可见的文章第一页
func (h *PageHandler) Index(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	articles, _, err := h.articleService.GetArticles(sess, &models.ArticleListRequest{Page: 1})
	if err != nil {
		c.String(http.StatusInternalServerError, "服务器内部错误")
		return
	}

	var items strings.Builder
	for _, a := range articles {
		items.WriteString(fmt.Sprintf(`<li><a href="/api/articles/%s">%s</a>（%s）</li>`,
			a.ID, html.EscapeString(a.Title), html.EscapeString(a.Category)))
	}

	data := map[string]string{
		"articles": items.String(),
	}
	if sess != nil {
		data["username"] = html.EscapeString(sess.Username)
		data["logged_in"] = "true"
	} else {
		data["show_login"] = "true"
	}

	h.renderPage(c, "index.html", data)
}

func (h *PageHandler) Login(c *gin.Context) {
	h.renderPage(c, "login.html", nil)
}

func (h *PageHandler) Register(c *gin.Context) {
	h.renderPage(c, "register.html", nil)
}

func (h *PageHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "服务运行正常",
	})
}

func (h *PageHandler) renderPage(c *gin.Context, name string, data map[string]string) {
	page, err := h.renderer.Render(name, data)
	if err != nil {
		logrus.WithError(err).WithField("template", name).Error("页面渲染失败")
		c.String(http.StatusInternalServerError, "服务器内部错误")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
