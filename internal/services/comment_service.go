// internal/services/comment_service.go
package services

import (
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/session"
	"github.com/Limkon/Netnope-sub000/internal/storage"
)

// AnonymousName 匿名评论显示的名字
const AnonymousName = "匿名"

type CommentService struct {
	store storage.Store
}

func NewCommentService(store storage.Store) *CommentService {
	return &CommentService{store: store}
}

// GetComments 列出文章下的评论，文章必须对当前身份可见
func (s *CommentService) GetComments(articleID string, sess *session.Session) ([]models.Comment, error) {
	article, err := s.store.FindArticleByID(articleID)
	if err != nil {
		return nil, err
	}
	if !visibleTo(article, sess) {
		return nil, ErrPermissionDenied
	}
	return s.store.CommentsByArticle(articleID)
}

// CreateComment 在已发布文章下发表评论。
// 匿名评论要求站点配置允许。
func (s *CommentService) CreateComment(articleID string, sess *session.Session, req *models.CommentCreateRequest) (*models.Comment, error) {
	article, err := s.store.FindArticleByID(articleID)
	if err != nil {
		return nil, err
	}
	if article.Status != models.StatusPublished {
		return nil, ErrNotPublished
	}

	comment := &models.Comment{
		ArticleID: articleID,
		Content:   req.Content,
	}

	if sess != nil {
		comment.UserID = sess.UserID
		comment.Username = sess.Username
	} else {
		settings, err := s.store.Settings()
		if err != nil {
			return nil, err
		}
		if !settings.AllowAnonymousComments {
			return nil, ErrAnonymousNotAllowed
		}
		comment.Username = AnonymousName
	}

	return s.store.SaveComment(comment)
}

// DeleteComment 作者或管理员可删除评论
func (s *CommentService) DeleteComment(commentID string, sess *session.Session) error {
	comment, err := s.store.FindCommentByID(commentID)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrPermissionDenied
	}
	if sess.Role != models.RoleAdmin && (comment.UserID == "" || comment.UserID != sess.UserID) {
		return ErrPermissionDenied
	}
	return s.store.DeleteComment(commentID)
}
