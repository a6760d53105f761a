// internal/services/article_service.go
package services

import (
	"math"
	"sort"

	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/multipart"
	"github.com/Limkon/Netnope-sub000/internal/session"
	"github.com/Limkon/Netnope-sub000/internal/storage"
)

// ArticleService 文章业务。已发布文章对所有人可见，
// 草稿只有作者和管理员可见。
type ArticleService struct {
	store storage.Store
	files *FileService
}

func NewArticleService(store storage.Store, files *FileService) *ArticleService {
	return &ArticleService{store: store, files: files}
}

// visibleTo 发布的文章谁都能看，草稿只有作者和管理员能看
func visibleTo(article *models.Article, sess *session.Session) bool {
	if article.Status == models.StatusPublished {
		return true
	}
	return canManage(article.UserID, sess)
}

// GetArticles 按可见性过滤并分页，新文章在前。
// 每页条数来自站点配置。
func (s *ArticleService) GetArticles(sess *session.Session, req *models.ArticleListRequest) ([]models.Article, *models.Pagination, error) {
	articles, err := s.store.Articles()
	if err != nil {
		return nil, nil, err
	}

	visible := []models.Article{}
	for i := range articles {
		if req.Category != "" && articles[i].Category != req.Category {
			continue
		}
		if visibleTo(&articles[i], sess) {
			visible = append(visible, articles[i])
		}
	}

	sort.Slice(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})

	settings, err := s.store.Settings()
	if err != nil {
		return nil, nil, err
	}
	limit := settings.ArticlesPerPage

	page := req.Page
	if page <= 0 {
		page = 1
	}

	total := len(visible)
	pages := int(math.Ceil(float64(total) / float64(limit)))

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pagination := &models.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}

	return visible[start:end], pagination, nil
}

func (s *ArticleService) GetArticle(articleID string, sess *session.Session) (*models.Article, error) {
	article, err := s.store.FindArticleByID(articleID)
	if err != nil {
		return nil, err
	}
	if !visibleTo(article, sess) {
		return nil, ErrPermissionDenied
	}
	return article, nil
}

func (s *ArticleService) CreateArticle(sess *session.Session, req *models.ArticleCreateRequest, upload *multipart.File) (*models.Article, error) {
	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	}
	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}

	article := &models.Article{
		UserID:   sess.UserID,
		Title:    req.Title,
		Content:  req.Content,
		Category: category,
		Status:   status,
	}

	if upload != nil {
		att, err := s.files.SaveUpload(sess.UserID, upload)
		if err != nil {
			return nil, err
		}
		article.Attachment = att
	}

	saved, err := s.store.SaveArticle(article)
	if err != nil {
		s.files.Remove(article.Attachment)
		return nil, err
	}
	return saved, nil
}

func (s *ArticleService) UpdateArticle(articleID string, sess *session.Session, req *models.ArticleUpdateRequest, upload *multipart.File) (*models.Article, error) {
	article, err := s.store.FindArticleByID(articleID)
	if err != nil {
		return nil, err
	}
	if !canManage(article.UserID, sess) {
		return nil, ErrPermissionDenied
	}

	article.Title = req.Title
	article.Content = req.Content
	if req.Category != "" {
		article.Category = req.Category
	}
	if req.Status != "" {
		article.Status = req.Status
	}

	prior := article.Attachment
	switch {
	case upload != nil:
		att, err := s.files.SaveUpload(article.UserID, upload)
		if err != nil {
			return nil, err
		}
		article.Attachment = att
	case req.RemoveAttachment:
		article.Attachment = nil
	default:
		prior = nil
	}

	saved, err := s.store.SaveArticle(article)
	if err != nil {
		return nil, err
	}
	s.files.Remove(prior)
	return saved, nil
}

func (s *ArticleService) DeleteArticle(articleID string, sess *session.Session) error {
	article, err := s.store.FindArticleByID(articleID)
	if err != nil {
		return err
	}
	if !canManage(article.UserID, sess) {
		return ErrPermissionDenied
	}
	// 附件文件和评论由存储层级联删除
	return s.store.DeleteArticle(articleID)
}
