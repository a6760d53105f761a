package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Limkon/Netnope-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	usersFile    = "users.json"
	notesFile    = "notes.json"
	articlesFile = "articles.json"
	commentsFile = "comments.json"
	settingsFile = "settings.json"
)

// FileStore 基于整文件 JSON 集合的 Store 实现。
// 每次变更都重读并整体重写集合文件，跨进程仍是后写覆盖先写。
// 进程内用互斥锁串行化，Go 的请求处理是并发的。
type FileStore struct {
	mu         sync.Mutex
	dataPath   string
	uploadPath string
}

func NewFileStore(dataPath, uploadPath string) (*FileStore, error) {
	for _, dir := range []string{dataPath, uploadPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("创建存储目录失败: %w", err)
		}
	}
	return &FileStore{dataPath: dataPath, uploadPath: uploadPath}, nil
}

// UploadPath 返回上传根目录
func (s *FileStore) UploadPath() string {
	return s.uploadPath
}

func (s *FileStore) file(name string) string {
	return filepath.Join(s.dataPath, name)
}

// newID 生成记录 ID：毫秒时间戳加随机后缀
func newID() string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// readCollection 读取集合文件。文件不存在时自动建一个空集合文件；
// 内容损坏时降级为空集合而不是让进程崩溃。
func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if werr := os.WriteFile(path, []byte("[]"), 0644); werr != nil {
				return nil, werr
			}
			return []T{}, nil
		}
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		logrus.WithError(err).WithField("file", path).Warn("集合文件损坏，按空集合处理")
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func writeCollection[T any](path string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// saveRecord 通用的保存逻辑：无 ID 则分配新 ID 并设置创建时间，
// 有 ID 则要求记录已存在，保留创建时间并刷新更新时间。
func saveRecord[T any](path string, rec *T, getID func(*T) string, setID func(*T, string),
	getCreated func(*T) time.Time, setTimes func(*T, time.Time, time.Time)) (*T, error) {

	records, err := readCollection[T](path)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if getID(rec) == "" {
		setID(rec, newID())
		setTimes(rec, now, now)
		records = append(records, *rec)
	} else {
		idx := -1
		for i := range records {
			if getID(&records[i]) == getID(rec) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrNotFound
		}
		setTimes(rec, getCreated(&records[idx]), now)
		records[idx] = *rec
	}

	if err := writeCollection(path, records); err != nil {
		return nil, err
	}
	return rec, nil
}

// ---- 用户 ----

func (s *FileStore) Users() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[models.User](s.file(usersFile))
}

func (s *FileStore) FindUserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findUserLocked(func(u *models.User) bool { return u.ID == id })
}

func (s *FileStore) FindUserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findUserLocked(func(u *models.User) bool { return u.Username == username })
}

func (s *FileStore) findUserLocked(match func(*models.User) bool) (*models.User, error) {
	users, err := readCollection[models.User](s.file(usersFile))
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(&users[i]) {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) SaveUser(user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveRecord(s.file(usersFile), user,
		func(u *models.User) string { return u.ID },
		func(u *models.User, id string) { u.ID = id },
		func(u *models.User) time.Time { return u.CreatedAt },
		func(u *models.User, created, updated time.Time) { u.CreatedAt = created; u.UpdatedAt = updated })
}

// DeleteUser 删除用户并级联：用户的笔记和文章（连同各自的附件和评论）、
// 用户发表的评论、用户的上传目录。
func (s *FileStore) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readCollection[models.User](s.file(usersFile))
	if err != nil {
		return err
	}
	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	users = append(users[:idx], users[idx+1:]...)
	if err := writeCollection(s.file(usersFile), users); err != nil {
		return err
	}

	// 级联笔记
	notes, err := readCollection[models.Note](s.file(notesFile))
	if err == nil {
		kept := notes[:0]
		for _, n := range notes {
			if n.UserID == id {
				s.removeAttachmentFile(n.Attachment)
				continue
			}
			kept = append(kept, n)
		}
		if err := writeCollection(s.file(notesFile), kept); err != nil {
			return err
		}
	}

	// 级联文章及其评论
	articles, err := readCollection[models.Article](s.file(articlesFile))
	deletedArticles := map[string]bool{}
	if err == nil {
		kept := articles[:0]
		for _, a := range articles {
			if a.UserID == id {
				s.removeAttachmentFile(a.Attachment)
				deletedArticles[a.ID] = true
				continue
			}
			kept = append(kept, a)
		}
		if err := writeCollection(s.file(articlesFile), kept); err != nil {
			return err
		}
	}

	// 删除该用户发表的评论和被删文章下的评论
	comments, err := readCollection[models.Comment](s.file(commentsFile))
	if err == nil {
		kept := comments[:0]
		for _, cm := range comments {
			if cm.UserID == id || deletedArticles[cm.ArticleID] {
				continue
			}
			kept = append(kept, cm)
		}
		if err := writeCollection(s.file(commentsFile), kept); err != nil {
			return err
		}
	}

	// 删除用户上传目录
	if err := os.RemoveAll(filepath.Join(s.uploadPath, id)); err != nil {
		logrus.WithError(err).WithField("user_id", id).Warn("删除用户上传目录失败")
	}

	return nil
}

// ---- 笔记 ----

func (s *FileStore) Notes() ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[models.Note](s.file(notesFile))
}

func (s *FileStore) FindNoteByID(id string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := readCollection[models.Note](s.file(notesFile))
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].ID == id {
			return &notes[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) SaveNote(note *models.Note) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveRecord(s.file(notesFile), note,
		func(n *models.Note) string { return n.ID },
		func(n *models.Note, id string) { n.ID = id },
		func(n *models.Note) time.Time { return n.CreatedAt },
		func(n *models.Note, created, updated time.Time) { n.CreatedAt = created; n.UpdatedAt = updated })
}

// DeleteNote 删除笔记，连同附件文件
func (s *FileStore) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := readCollection[models.Note](s.file(notesFile))
	if err != nil {
		return err
	}
	idx := -1
	for i := range notes {
		if notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.removeAttachmentFile(notes[idx].Attachment)
	notes = append(notes[:idx], notes[idx+1:]...)
	return writeCollection(s.file(notesFile), notes)
}

// ---- 文章 ----

func (s *FileStore) Articles() ([]models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[models.Article](s.file(articlesFile))
}

func (s *FileStore) FindArticleByID(id string) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	articles, err := readCollection[models.Article](s.file(articlesFile))
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].ID == id {
			return &articles[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) SaveArticle(article *models.Article) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveRecord(s.file(articlesFile), article,
		func(a *models.Article) string { return a.ID },
		func(a *models.Article, id string) { a.ID = id },
		func(a *models.Article) time.Time { return a.CreatedAt },
		func(a *models.Article, created, updated time.Time) { a.CreatedAt = created; a.UpdatedAt = updated })
}

// DeleteArticle 删除文章，级联删除附件文件和全部评论
func (s *FileStore) DeleteArticle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	articles, err := readCollection[models.Article](s.file(articlesFile))
	if err != nil {
		return err
	}
	idx := -1
	for i := range articles {
		if articles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.removeAttachmentFile(articles[idx].Attachment)
	articles = append(articles[:idx], articles[idx+1:]...)
	if err := writeCollection(s.file(articlesFile), articles); err != nil {
		return err
	}

	comments, err := readCollection[models.Comment](s.file(commentsFile))
	if err == nil {
		kept := comments[:0]
		for _, cm := range comments {
			if cm.ArticleID == id {
				continue
			}
			kept = append(kept, cm)
		}
		if err := writeCollection(s.file(commentsFile), kept); err != nil {
			return err
		}
	}
	return nil
}

// ---- 评论 ----

func (s *FileStore) Comments() ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[models.Comment](s.file(commentsFile))
}

func (s *FileStore) FindCommentByID(id string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments, err := readCollection[models.Comment](s.file(commentsFile))
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].ID == id {
			return &comments[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) CommentsByArticle(articleID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments, err := readCollection[models.Comment](s.file(commentsFile))
	if err != nil {
		return nil, err
	}
	result := []models.Comment{}
	for _, cm := range comments {
		if cm.ArticleID == articleID {
			result = append(result, cm)
		}
	}
	return result, nil
}

func (s *FileStore) SaveComment(comment *models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveRecord(s.file(commentsFile), comment,
		func(cm *models.Comment) string { return cm.ID },
		func(cm *models.Comment, id string) { cm.ID = id },
		func(cm *models.Comment) time.Time { return cm.CreatedAt },
		func(cm *models.Comment, created, updated time.Time) { cm.CreatedAt = created; cm.UpdatedAt = updated })
}

func (s *FileStore) DeleteComment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments, err := readCollection[models.Comment](s.file(commentsFile))
	if err != nil {
		return err
	}
	idx := -1
	for i := range comments {
		if comments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	comments = append(comments[:idx], comments[idx+1:]...)
	return writeCollection(s.file(commentsFile), comments)
}

// ---- 站点配置 ----

// Settings 读取站点配置，文件缺失或损坏时返回默认值
func (s *FileStore) Settings() (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.file(settingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, err
	}

	settings := models.DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		logrus.WithError(err).Warn("站点配置文件损坏，使用默认配置")
		return models.DefaultSettings(), nil
	}
	if settings.ArticlesPerPage <= 0 {
		settings.ArticlesPerPage = models.DefaultSettings().ArticlesPerPage
	}
	return settings, nil
}

// removeAttachmentFile 删除附件对应的物理文件，失败只记日志
func (s *FileStore) removeAttachmentFile(att *models.Attachment) {
	if att == nil || att.Path == "" {
		return
	}
	path := filepath.Join(s.uploadPath, filepath.FromSlash(att.Path))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", path).Warn("删除附件文件失败")
	}
}
