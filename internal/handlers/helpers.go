package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Limkon/Netnope-sub000/internal/multipart"
	"github.com/Limkon/Netnope-sub000/internal/services"
	"github.com/Limkon/Netnope-sub000/internal/storage"
	"github.com/Limkon/Netnope-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// AttachmentField 附件在 multipart 表单中的字段名
const AttachmentField = "attachment"

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// readMultipart 整体读入请求体并用自带解析器拆分。
// 体积上限由 BodyLimitMiddleware 在上游控制。
func readMultipart(c *gin.Context) (*multipart.Form, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	return multipart.Parse(body, c.GetHeader("Content-Type"))
}

// handleServiceError 把业务错误映射到响应状态码
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		utils.NotFound(c, "")
	case errors.Is(err, services.ErrUsernameTaken):
		utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrLastAdmin):
		utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied),
		errors.Is(err, services.ErrNotPublished),
		errors.Is(err, services.ErrAnonymousNotAllowed):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(c, http.StatusBadRequest, err.Error())
	default:
		utils.InternalError(c)
	}
}
