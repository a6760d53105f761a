// internal/services/note_service.go
package services

import (
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/multipart"
	"github.com/Limkon/Netnope-sub000/internal/session"
	"github.com/Limkon/Netnope-sub000/internal/storage"
)

// NoteService 笔记业务。笔记对所有者私有，管理员可以管理任何笔记。
type NoteService struct {
	store storage.Store
	files *FileService
}

func NewNoteService(store storage.Store, files *FileService) *NoteService {
	return &NoteService{store: store, files: files}
}

// GetNotes 列出当前用户的笔记，管理员看到全部
func (s *NoteService) GetNotes(sess *session.Session) ([]models.Note, error) {
	notes, err := s.store.Notes()
	if err != nil {
		return nil, err
	}
	if sess.Role == models.RoleAdmin {
		return notes, nil
	}

	own := []models.Note{}
	for _, n := range notes {
		if n.UserID == sess.UserID {
			own = append(own, n)
		}
	}
	return own, nil
}

func (s *NoteService) GetNote(noteID string, sess *session.Session) (*models.Note, error) {
	note, err := s.store.FindNoteByID(noteID)
	if err != nil {
		return nil, err
	}
	if !canManage(note.UserID, sess) {
		return nil, ErrPermissionDenied
	}
	return note, nil
}

func (s *NoteService) CreateNote(sess *session.Session, req *models.NoteCreateRequest, upload *multipart.File) (*models.Note, error) {
	note := &models.Note{
		UserID:  sess.UserID,
		Title:   req.Title,
		Content: req.Content,
	}

	if upload != nil {
		att, err := s.files.SaveUpload(sess.UserID, upload)
		if err != nil {
			return nil, err
		}
		note.Attachment = att
	}

	saved, err := s.store.SaveNote(note)
	if err != nil {
		// 记录没写成，不留下孤立文件
		s.files.Remove(note.Attachment)
		return nil, err
	}
	return saved, nil
}

func (s *NoteService) UpdateNote(noteID string, sess *session.Session, req *models.NoteUpdateRequest, upload *multipart.File) (*models.Note, error) {
	note, err := s.store.FindNoteByID(noteID)
	if err != nil {
		return nil, err
	}
	if !canManage(note.UserID, sess) {
		return nil, ErrPermissionDenied
	}

	note.Title = req.Title
	note.Content = req.Content

	prior := note.Attachment
	switch {
	case upload != nil:
		att, err := s.files.SaveUpload(note.UserID, upload)
		if err != nil {
			return nil, err
		}
		note.Attachment = att
	case req.RemoveAttachment:
		note.Attachment = nil
	default:
		prior = nil
	}

	saved, err := s.store.SaveNote(note)
	if err != nil {
		return nil, err
	}
	// 保存成功后再清理被替换或移除的旧附件
	s.files.Remove(prior)
	return saved, nil
}

func (s *NoteService) DeleteNote(noteID string, sess *session.Session) error {
	note, err := s.store.FindNoteByID(noteID)
	if err != nil {
		return err
	}
	if !canManage(note.UserID, sess) {
		return ErrPermissionDenied
	}
	return s.store.DeleteNote(noteID)
}

// canManage 所有者或管理员
func canManage(ownerID string, sess *session.Session) bool {
	if sess == nil {
		return false
	}
	return sess.Role == models.RoleAdmin || sess.UserID == ownerID
}
