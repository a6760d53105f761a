package models

import "time"

// Attachment 附件元数据，内嵌在所属笔记/文章中，Path 为相对上传根目录的路径
type Attachment struct {
	OriginalName string `json:"original_name"`
	Path         string `json:"path"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

type Note struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Attachment *Attachment `json:"attachment,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type NoteCreateRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=255"`
	Content string `json:"content" form:"content"`
}

type NoteUpdateRequest struct {
	Title            string `json:"title" form:"title" validate:"required,max=255"`
	Content          string `json:"content" form:"content"`
	RemoveAttachment bool   `json:"remove_attachment" form:"remove_attachment"`
}
