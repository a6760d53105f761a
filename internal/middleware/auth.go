// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/session"
	"github.com/Limkon/Netnope-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextSession = "session"
	ContextRole    = "role"
)

// ResolveSession 从会话 Cookie 解析登录态写入上下文，未登录按匿名继续。
// 角色门禁由 RequireRole 按路由执行。
func ResolveSession(sessions *session.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.RoleAnonymous

		if token, err := c.Cookie(cookieName); err == nil {
			if sess, ok := sessions.Authenticate(token); ok {
				c.Set(ContextSession, sess)
				role = sess.Role
			}
		}

		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireRole 要求会话角色不低于 minRole。
// 未登录时 API 路径返回 401，页面路径重定向到登录页；
// 已登录但角色不足返回 403。
func RequireRole(minRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if minRole == models.RoleAnonymous {
			c.Next()
			return
		}

		sess := SessionFrom(c)
		if sess == nil {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				utils.Unauthorized(c, "请先登录")
			} else {
				c.Redirect(302, "/login")
			}
			c.Abort()
			return
		}

		if !models.RoleAtLeast(sess.Role, minRole) {
			utils.Forbidden(c, "权限不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// SessionFrom 取出当前请求的会话，匿名时返回 nil
func SessionFrom(c *gin.Context) *session.Session {
	if val, exists := c.Get(ContextSession); exists {
		if sess, ok := val.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// RoleFrom 取出当前请求的角色，匿名时返回 anonymous
func RoleFrom(c *gin.Context) string {
	if val, exists := c.Get(ContextRole); exists {
		if role, ok := val.(string); ok {
			return role
		}
	}
	return models.RoleAnonymous
}
