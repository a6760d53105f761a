package handlers

import (
	"net/http"

	"github.com/Limkon/Netnope-sub000/internal/config"
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/services"
	"github.com/Limkon/Netnope-sub000/internal/session"
	"github.com/Limkon/Netnope-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
	config      *config.Config
	validator   *validator.Validate
}

func NewAuthHandler(authService *services.AuthService, sessions *session.Manager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		config:      cfg,
		validator:   validator.New(),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserRegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	// 验证请求参数
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "注册成功", user.Info())
}

// Login 校验凭证并签发会话 Cookie。
// 表单提交重定向回首页，JSON 请求返回数据响应。
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	user, err := h.authService.Login(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	token, err := h.sessions.Login(user)
	if err != nil {
		utils.InternalError(c)
		return
	}

	maxAge := h.config.Session.TTLHours * 3600
	c.SetCookie(h.config.Session.CookieName, token, maxAge, "/", "", false, true)

	if c.ContentType() == "application/json" {
		utils.SuccessWithMessage(c, "登录成功", user.Info())
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout 删除会话并清除 Cookie，没有会话时也静默成功
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.config.Session.CookieName); err == nil {
		h.sessions.Logout(token)
	}
	c.SetCookie(h.config.Session.CookieName, "", -1, "/", "", false, true)

	if c.ContentType() == "application/json" {
		utils.SuccessWithMessage(c, "退出成功", nil)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
