package routes

import (
	"time"

	"github.com/Limkon/Netnope-sub000/internal/config"
	"github.com/Limkon/Netnope-sub000/internal/handlers"
	"github.com/Limkon/Netnope-sub000/internal/middleware"
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/render"
	"github.com/Limkon/Netnope-sub000/internal/services"
	"github.com/Limkon/Netnope-sub000/internal/session"
	"github.com/Limkon/Netnope-sub000/internal/storage"

	"github.com/gin-gonic/gin"
)

// Route 一条路由声明。MinRole 为所需的最低角色，
// anonymous 表示公开访问。细粒度的所有权规则在服务层。
type Route struct {
	Method  string
	Pattern string
	Handler gin.HandlerFunc
	MinRole string
}

func Setup(store storage.Store, sessions *session.Manager, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowOrigins))
	router.Use(middleware.RateLimitMiddleware(60))
	router.Use(middleware.BodyLimitMiddleware(cfg.File.MaxUploadSize))
	router.Use(middleware.ResolveSession(sessions, cfg.Session.CookieName))

	fileService := services.NewFileService(cfg.Storage.UploadPath)
	authService := services.NewAuthService(store)
	noteService := services.NewNoteService(store, fileService)
	articleService := services.NewArticleService(store, fileService)
	commentService := services.NewCommentService(store)
	userService := services.NewUserService(store)

	renderer := render.NewFileRenderer("web/templates")

	authHandler := handlers.NewAuthHandler(authService, sessions, cfg)
	noteHandler := handlers.NewNoteHandler(noteService)
	articleHandler := handlers.NewArticleHandler(articleService)
	commentHandler := handlers.NewCommentHandler(commentService)
	adminHandler := handlers.NewAdminHandler(userService)
	fileHandler := handlers.NewFileHandler(fileService)
	pageHandler := handlers.NewPageHandler(renderer, articleService)

	// 路由表按声明顺序注册，先声明的先匹配
	table := []Route{
		// 页面
		{"GET", "/", pageHandler.Index, models.RoleAnonymous},
		{"GET", "/health", pageHandler.Health, models.RoleAnonymous},
		{"GET", "/login", pageHandler.Login, models.RoleAnonymous},
		{"POST", "/login", authHandler.Login, models.RoleAnonymous},
		{"POST", "/logout", authHandler.Logout, models.RoleAnonymous},
		{"GET", "/register", pageHandler.Register, models.RoleAnonymous},

		// 用户
		{"POST", "/api/users/register", authHandler.Register, models.RoleAnonymous},

		// 笔记
		{"GET", "/api/notes", noteHandler.GetNotes, models.RoleUser},
		{"POST", "/api/notes", noteHandler.CreateNote, models.RoleUser},
		{"GET", "/api/notes/:id", noteHandler.GetNote, models.RoleUser},
		{"PUT", "/api/notes/:id", noteHandler.UpdateNote, models.RoleUser},
		{"DELETE", "/api/notes/:id", noteHandler.DeleteNote, models.RoleUser},

		// 文章
		{"GET", "/api/articles", articleHandler.GetArticles, models.RoleAnonymous},
		{"POST", "/api/articles", articleHandler.CreateArticle, models.RoleConsultant},
		{"GET", "/api/articles/:id", articleHandler.GetArticle, models.RoleAnonymous},
		{"PUT", "/api/articles/:id", articleHandler.UpdateArticle, models.RoleConsultant},
		{"DELETE", "/api/articles/:id", articleHandler.DeleteArticle, models.RoleConsultant},

		// 评论（匿名评论是否允许由站点配置决定，在服务层判断）
		{"GET", "/api/articles/:id/comments", commentHandler.GetComments, models.RoleAnonymous},
		{"POST", "/api/articles/:id/comments", commentHandler.CreateComment, models.RoleAnonymous},
		{"DELETE", "/api/comments/:id", commentHandler.DeleteComment, models.RoleUser},

		// 管理员
		{"GET", "/api/admin/users", adminHandler.GetUsers, models.RoleAdmin},
		{"POST", "/api/admin/users", adminHandler.CreateUser, models.RoleAdmin},
		{"PUT", "/api/admin/users/:id/password", adminHandler.ResetPassword, models.RoleAdmin},
		{"DELETE", "/api/admin/users/:id", adminHandler.DeleteUser, models.RoleAdmin},

		// 上传文件，需要登录且仅限本人或管理员
		{"GET", "/uploads/:userId/:filename", fileHandler.ServeUpload, models.RoleUser},
	}

	for _, r := range table {
		router.Handle(r.Method, r.Pattern, middleware.RequireRole(r.MinRole), r.Handler)
	}

	return router
}

// SessionTTL 从配置换算会话有效期
func SessionTTL(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Session.TTLHours) * time.Hour
}

// SweepInterval 从配置换算清理周期
func SweepInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Session.SweepMinutes) * time.Minute
}
