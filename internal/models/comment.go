package models

import "time"

// Comment 文章评论。匿名评论的 UserID 为空，Username 固定为"匿名"。
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"article_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentCreateRequest struct {
	Content string `json:"content" form:"content" validate:"required,max=2000"`
}
