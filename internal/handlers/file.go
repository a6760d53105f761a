package handlers

import (
	"os"

	"github.com/Limkon/Netnope-sub000/internal/middleware"
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/services"
	"github.com/Limkon/Netnope-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	fileService *services.FileService
}

func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// ServeUpload 提供上传文件下载。需要登录，且只有文件所属用户
// 或管理员可以访问。
func (h *FileHandler) ServeUpload(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	ownerID := c.Param("userId")
	filename := c.Param("filename")

	if sess.Role != models.RoleAdmin && sess.UserID != ownerID {
		utils.Forbidden(c, "无权限访问该文件")
		return
	}

	path := h.fileService.FilePath(ownerID, filename)
	if _, err := os.Stat(path); err != nil {
		utils.NotFound(c, "文件不存在")
		return
	}

	c.File(path)
}
