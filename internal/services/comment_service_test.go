package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/storage"
)

func newStoreWithSettings(t *testing.T, settings *models.Settings) *storage.FileStore {
	t.Helper()
	dataDir := t.TempDir()
	if settings != nil {
		data, err := json.Marshal(settings)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dataDir, "settings.json"), data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFileStore(dataDir, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestCommentOnPublishedArticle(t *testing.T) {
	store := newTestStore(t)
	svc := NewCommentService(store)

	article, err := store.SaveArticle(&models.Article{UserID: "c1", Title: "文章", Status: models.StatusPublished})
	if err != nil {
		t.Fatal(err)
	}

	comment, err := svc.CreateComment(article.ID, sessionFor("m1", models.RoleMember),
		&models.CommentCreateRequest{Content: "写得好"})
	if err != nil {
		t.Fatalf("成员评论已发布文章应放行: %v", err)
	}
	if comment.UserID != "m1" || comment.Username != "m1" {
		t.Errorf("评论作者信息不符: %+v", comment)
	}
	if comment.ArticleID != article.ID {
		t.Errorf("评论应挂在目标文章下: %+v", comment)
	}
}

func TestCommentOnDraftRejected(t *testing.T) {
	store := newTestStore(t)
	svc := NewCommentService(store)

	draft, err := store.SaveArticle(&models.Article{UserID: "c1", Title: "草稿", Status: models.StatusDraft})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.CreateComment(draft.ID, sessionFor("m1", models.RoleMember),
		&models.CommentCreateRequest{Content: "x"}); err != ErrNotPublished {
		t.Errorf("草稿不可评论，got %v", err)
	}
}

func TestAnonymousCommentConfigurable(t *testing.T) {
	// 默认配置下拒绝
	store := newTestStore(t)
	svc := NewCommentService(store)
	article, err := store.SaveArticle(&models.Article{UserID: "c1", Title: "文章", Status: models.StatusPublished})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateComment(article.ID, nil, &models.CommentCreateRequest{Content: "匿名的"}); err != ErrAnonymousNotAllowed {
		t.Errorf("默认应拒绝匿名评论，got %v", err)
	}

	// 放开配置后允许
	store2 := newStoreWithSettings(t, &models.Settings{ArticlesPerPage: 10, AllowAnonymousComments: true})
	svc2 := NewCommentService(store2)
	article2, err := store2.SaveArticle(&models.Article{UserID: "c1", Title: "文章", Status: models.StatusPublished})
	if err != nil {
		t.Fatal(err)
	}
	comment, err := svc2.CreateComment(article2.ID, nil, &models.CommentCreateRequest{Content: "匿名的"})
	if err != nil {
		t.Fatalf("配置允许时匿名评论应放行: %v", err)
	}
	if comment.UserID != "" || comment.Username != AnonymousName {
		t.Errorf("匿名评论应无用户 ID 且显示匿名: %+v", comment)
	}
}

func TestDeleteCommentPermissions(t *testing.T) {
	store := newTestStore(t)
	svc := NewCommentService(store)

	article, err := store.SaveArticle(&models.Article{UserID: "c1", Title: "文章", Status: models.StatusPublished})
	if err != nil {
		t.Fatal(err)
	}
	comment, err := store.SaveComment(&models.Comment{ArticleID: article.ID, UserID: "m1", Username: "m1", Content: "x"})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteComment(comment.ID, sessionFor("m2", models.RoleMember)); err != ErrPermissionDenied {
		t.Errorf("他人不应能删除评论，got %v", err)
	}
	if err := svc.DeleteComment(comment.ID, sessionFor("m1", models.RoleMember)); err != nil {
		t.Errorf("作者删除自己的评论应放行: %v", err)
	}

	// 管理员可以删除任何评论
	comment2, err := store.SaveComment(&models.Comment{ArticleID: article.ID, UserID: "m1", Username: "m1", Content: "y"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteComment(comment2.ID, sessionFor("a1", models.RoleAdmin)); err != nil {
		t.Errorf("管理员删除评论应放行: %v", err)
	}
}

func TestCommentsHiddenWithDraft(t *testing.T) {
	store := newTestStore(t)
	svc := NewCommentService(store)

	draft, err := store.SaveArticle(&models.Article{UserID: "c1", Title: "草稿", Status: models.StatusDraft})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetComments(draft.ID, nil); err != ErrPermissionDenied {
		t.Errorf("草稿的评论对匿名不可见，got %v", err)
	}
	if _, err := svc.GetComments(draft.ID, sessionFor("c1", models.RoleConsultant)); err != nil {
		t.Errorf("作者应能看到自己草稿的评论: %v", err)
	}
}
