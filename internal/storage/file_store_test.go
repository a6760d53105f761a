package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Limkon/Netnope-sub000/internal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("创建存储失败: %v", err)
	}
	return store
}

func TestSaveAssignsIDAndTimestamps(t *testing.T) {
	store := newTestStore(t)

	note, err := store.SaveNote(&models.Note{UserID: "u1", Title: "标题", Content: "内容"})
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	if note.ID == "" {
		t.Error("新记录应分配 ID")
	}
	if note.CreatedAt.IsZero() || !note.CreatedAt.Equal(note.UpdatedAt) {
		t.Errorf("新记录应满足 CreatedAt == UpdatedAt，got created=%v updated=%v", note.CreatedAt, note.UpdatedAt)
	}

	other, err := store.SaveNote(&models.Note{UserID: "u1", Title: "另一篇"})
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	if other.ID == note.ID {
		t.Error("两条记录的 ID 不应相同")
	}
}

func TestSaveExistingPreservesCreatedAt(t *testing.T) {
	store := newTestStore(t)

	note, err := store.SaveNote(&models.Note{UserID: "u1", Title: "原始"})
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	created := note.CreatedAt

	time.Sleep(10 * time.Millisecond)

	note.Title = "修改后"
	updated, err := store.SaveNote(note)
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Errorf("更新应保留 CreatedAt，want %v got %v", created, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created) {
		t.Errorf("更新应刷新 UpdatedAt，created=%v updated=%v", created, updated.UpdatedAt)
	}

	got, err := store.FindNoteByID(note.ID)
	if err != nil {
		t.Fatalf("查找失败: %v", err)
	}
	if got.Title != "修改后" {
		t.Errorf("更新未落盘，got %q", got.Title)
	}
}

func TestSaveUpdateMissingIDFails(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveNote(&models.Note{ID: "不存在", Title: "x"})
	if err != ErrNotFound {
		t.Errorf("更新不存在的记录应返回 ErrNotFound，got %v", err)
	}
}

func TestMissingFileAutoCreates(t *testing.T) {
	store := newTestStore(t)

	notes, err := store.Notes()
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("缺失文件应返回空集合，got %d", len(notes))
	}
	if _, err := os.Stat(store.file(notesFile)); err != nil {
		t.Errorf("缺失文件应被自动创建: %v", err)
	}
}

func TestCorruptFileRecoversEmpty(t *testing.T) {
	store := newTestStore(t)

	if err := os.WriteFile(store.file(notesFile), []byte("{not json]"), 0644); err != nil {
		t.Fatal(err)
	}

	notes, err := store.Notes()
	if err != nil {
		t.Fatalf("损坏文件不应报错: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("损坏文件应按空集合处理，got %d", len(notes))
	}
}

func TestArticleRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.SaveArticle(&models.Article{
		UserID:   "u1",
		Title:    "深入浅出",
		Content:  "<p>富文本内容</p>",
		Category: "技术",
		Status:   models.StatusPublished,
	})
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}

	got, err := store.FindArticleByID(saved.ID)
	if err != nil {
		t.Fatalf("查找失败: %v", err)
	}
	if got.Title != "深入浅出" || got.Content != "<p>富文本内容</p>" ||
		got.Category != "技术" || got.Status != models.StatusPublished {
		t.Errorf("往返内容不一致: %+v", got)
	}
}

func TestDeleteArticleCascades(t *testing.T) {
	store := newTestStore(t)

	// 准备附件文件
	userDir := filepath.Join(store.uploadPath, "u1")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	attPath := filepath.Join(userDir, "a.png")
	if err := os.WriteFile(attPath, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	article, err := store.SaveArticle(&models.Article{
		UserID: "u1",
		Title:  "带附件",
		Status: models.StatusPublished,
		Attachment: &models.Attachment{
			OriginalName: "a.png",
			Path:         "u1/a.png",
			MimeType:     "image/png",
			Size:         3,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.SaveComment(&models.Comment{ArticleID: article.ID, UserID: "u2", Content: "好文"}); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteArticle(article.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	if _, err := os.Stat(attPath); !os.IsNotExist(err) {
		t.Error("删除文章应删除附件文件")
	}
	comments, err := store.CommentsByArticle(article.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 0 {
		t.Errorf("删除文章应级联删除评论，剩余 %d", len(comments))
	}
}

func TestDeleteUserCascades(t *testing.T) {
	store := newTestStore(t)

	user, err := store.SaveUser(&models.User{Username: "alice", Role: models.RoleConsultant})
	if err != nil {
		t.Fatal(err)
	}

	userDir := filepath.Join(store.uploadPath, user.ID)
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "doc.pdf"), []byte("pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	note, err := store.SaveNote(&models.Note{
		UserID: user.ID,
		Title:  "私人笔记",
		Attachment: &models.Attachment{
			OriginalName: "doc.pdf",
			Path:         user.ID + "/doc.pdf",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	article, err := store.SaveArticle(&models.Article{UserID: user.ID, Title: "文章", Status: models.StatusPublished})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveComment(&models.Comment{ArticleID: article.ID, UserID: "别人", Content: "评论"}); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteUser(user.ID); err != nil {
		t.Fatalf("删除用户失败: %v", err)
	}

	if _, err := store.FindNoteByID(note.ID); err != ErrNotFound {
		t.Error("删除用户应级联删除笔记")
	}
	if _, err := store.FindArticleByID(article.ID); err != ErrNotFound {
		t.Error("删除用户应级联删除文章")
	}
	comments, _ := store.CommentsByArticle(article.ID)
	if len(comments) != 0 {
		t.Error("删除用户应级联删除被删文章下的评论")
	}
	if _, err := os.Stat(userDir); !os.IsNotExist(err) {
		t.Error("删除用户应删除其上传目录")
	}
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	if err := store.DeleteNote("nope"); err != ErrNotFound {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if err := store.DeleteArticle("nope"); err != ErrNotFound {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if err := store.DeleteUser("nope"); err != ErrNotFound {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestSettingsDefaults(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.Settings()
	if err != nil {
		t.Fatalf("读取配置失败: %v", err)
	}
	if settings.ArticlesPerPage != 10 {
		t.Errorf("默认每页条数应为 10，got %d", settings.ArticlesPerPage)
	}
	if settings.AllowAnonymousComments {
		t.Error("默认不允许匿名评论")
	}

	// 损坏的配置文件回退默认值
	if err := os.WriteFile(store.file(settingsFile), []byte("oops"), 0644); err != nil {
		t.Fatal(err)
	}
	settings, err = store.Settings()
	if err != nil {
		t.Fatalf("损坏配置不应报错: %v", err)
	}
	if settings.ArticlesPerPage != 10 {
		t.Errorf("损坏配置应回退默认值，got %d", settings.ArticlesPerPage)
	}
}
