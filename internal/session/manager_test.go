package session

import (
	"testing"
	"time"

	"github.com/Limkon/Netnope-sub000/internal/models"
)

func TestLoginAndAuthenticate(t *testing.T) {
	m := NewManager(time.Hour, time.Hour)
	defer m.Stop()

	user := &models.User{ID: "u1", Username: "alice", Role: models.RoleConsultant}
	token, err := m.Login(user)
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if token == "" {
		t.Fatal("令牌不应为空")
	}

	sess, ok := m.Authenticate(token)
	if !ok {
		t.Fatal("刚签发的会话应能通过验证")
	}
	if sess.UserID != "u1" || sess.Username != "alice" || sess.Role != models.RoleConsultant {
		t.Errorf("会话内容不符: %+v", sess)
	}

	// 两次登录的令牌不应相同
	token2, _ := m.Login(user)
	if token2 == token {
		t.Error("令牌应随机且不重复")
	}
}

func TestAuthenticateUnknownToken(t *testing.T) {
	m := NewManager(time.Hour, time.Hour)
	defer m.Stop()

	if _, ok := m.Authenticate("不存在的令牌"); ok {
		t.Error("未知令牌不应通过验证")
	}
	if _, ok := m.Authenticate(""); ok {
		t.Error("空令牌不应通过验证")
	}
}

func TestExpiredSessionPurgedOnLookup(t *testing.T) {
	m := NewManager(-time.Second, time.Hour) // 签发即过期
	defer m.Stop()

	token, err := m.Login(&models.User{ID: "u1", Username: "bob", Role: models.RoleUser})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := m.Authenticate(token); ok {
		t.Error("过期会话不应通过验证")
	}
	if m.Count() != 0 {
		t.Errorf("过期会话应在查询时被清除，剩余 %d", m.Count())
	}
}

func TestLogout(t *testing.T) {
	m := NewManager(time.Hour, time.Hour)
	defer m.Stop()

	token, _ := m.Login(&models.User{ID: "u1", Username: "bob", Role: models.RoleUser})
	m.Logout(token)

	if _, ok := m.Authenticate(token); ok {
		t.Error("退出后的会话不应通过验证")
	}

	// 重复退出静默
	m.Logout(token)
}

func TestSweepRemovesExpired(t *testing.T) {
	m := NewManager(-time.Second, time.Hour)
	defer m.Stop()

	for i := 0; i < 3; i++ {
		if _, err := m.Login(&models.User{ID: "u", Username: "u", Role: models.RoleUser}); err != nil {
			t.Fatal(err)
		}
	}
	if m.Count() != 3 {
		t.Fatalf("want 3 sessions, got %d", m.Count())
	}

	m.Sweep()

	if m.Count() != 0 {
		t.Errorf("清理后应无会话，剩余 %d", m.Count())
	}
}

func TestRestartInvalidatesSessions(t *testing.T) {
	m := NewManager(time.Hour, time.Hour)
	token, _ := m.Login(&models.User{ID: "u1", Username: "bob", Role: models.RoleUser})
	m.Stop()

	// 新实例模拟进程重启
	m2 := NewManager(time.Hour, time.Hour)
	defer m2.Stop()

	if _, ok := m2.Authenticate(token); ok {
		t.Error("重启后旧令牌不应有效")
	}
}
