package models

import "time"

// 文章状态
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// DefaultCategory 未指定分类时的默认值
const DefaultCategory = "未分类"

type Article struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Category   string      `json:"category"`
	Status     string      `json:"status"`
	Attachment *Attachment `json:"attachment,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type ArticleCreateRequest struct {
	Title    string `json:"title" form:"title" validate:"required,max=255"`
	Content  string `json:"content" form:"content"`
	Category string `json:"category" form:"category" validate:"max=100"`
	Status   string `json:"status" form:"status" validate:"omitempty,articlestatus"`
}

type ArticleUpdateRequest struct {
	Title            string `json:"title" form:"title" validate:"required,max=255"`
	Content          string `json:"content" form:"content"`
	Category         string `json:"category" form:"category" validate:"max=100"`
	Status           string `json:"status" form:"status" validate:"omitempty,articlestatus"`
	RemoveAttachment bool   `json:"remove_attachment" form:"remove_attachment"`
}

type ArticleListRequest struct {
	Page     int    `form:"page" validate:"omitempty,min=1"`
	Category string `form:"category"`
}
