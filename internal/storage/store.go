package storage

import (
	"errors"

	"github.com/Limkon/Netnope-sub000/internal/models"
)

// ErrNotFound 更新或查找的记录不存在
var ErrNotFound = errors.New("记录不存在")

// Store 集合存储抽象。默认实现为整文件读写的 JSON 文件存储，
// 保持读-改-写语义；后续可以换成数据库实现而不影响上层契约。
type Store interface {
	Users() ([]models.User, error)
	FindUserByID(id string) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	SaveUser(user *models.User) (*models.User, error)
	DeleteUser(id string) error

	Notes() ([]models.Note, error)
	FindNoteByID(id string) (*models.Note, error)
	SaveNote(note *models.Note) (*models.Note, error)
	DeleteNote(id string) error

	Articles() ([]models.Article, error)
	FindArticleByID(id string) (*models.Article, error)
	SaveArticle(article *models.Article) (*models.Article, error)
	DeleteArticle(id string) error

	Comments() ([]models.Comment, error)
	FindCommentByID(id string) (*models.Comment, error)
	CommentsByArticle(articleID string) ([]models.Comment, error)
	SaveComment(comment *models.Comment) (*models.Comment, error)
	DeleteComment(id string) error

	Settings() (*models.Settings, error)
}
