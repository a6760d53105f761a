// internal/handlers/admin.go - 管理员用户管理
package handlers

import (
	"net/http"

	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/services"
	"github.com/Limkon/Netnope-sub000/internal/utils"
	pkgvalidator "github.com/Limkon/Netnope-sub000/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AdminHandler struct {
	userService *services.UserService
	validator   *validator.Validate
}

func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		// 角色枚举的自定义校验规则注册在共享实例上
		validator: pkgvalidator.GetValidator(),
	}
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{"users": users})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req models.AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}
	if !models.IsValidRole(req.Role) {
		utils.Error(c, http.StatusBadRequest, "无效的角色")
		return
	}

	user, err := h.userService.CreateUser(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "创建成功", user.Info())
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
	var req models.AdminResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	if err := h.userService.ResetPassword(c.Param("id"), req.Password); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "密码重置成功", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
