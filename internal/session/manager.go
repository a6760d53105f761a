package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/Limkon/Netnope-sub000/internal/models"

	"github.com/sirupsen/logrus"
)

// Session 登录态。ExpiresAt 为毫秒时间戳，签发后固定有效期。
type Session struct {
	Token     string
	UserID    string
	Username  string
	Role      string
	ExpiresAt int64
}

// Manager 进程内会话管理器。启动时创建，周期清理过期会话，
// 进程重启后所有会话失效。
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewManager(ttl, sweepInterval time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go m.sweepLoop(sweepInterval)
	return m
}

// Login 为用户签发新会话，返回随机令牌
func (m *Manager) Login(user *models.User) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	m.mu.Lock()
	m.sessions[token] = &Session{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(m.ttl).UnixMilli(),
	}
	m.mu.Unlock()

	return token, nil
}

// Authenticate 按令牌查会话，过期的会话当场清除并按不存在处理
func (m *Manager) Authenticate(token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}

	m.mu.RLock()
	sess, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Now().UnixMilli() >= sess.ExpiresAt {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, false
	}
	return sess, true
}

// Logout 删除会话，令牌不存在时静默
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Count 当前会话数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Stop 停止清理协程
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Manager) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-m.stop:
			return
		}
	}
}

// Sweep 清除所有已过期的会话
func (m *Manager) Sweep() {
	now := time.Now().UnixMilli()

	m.mu.Lock()
	removed := 0
	for token, sess := range m.sessions {
		if now >= sess.ExpiresAt {
			delete(m.sessions, token)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		logrus.WithField("removed", removed).Debug("清理过期会话")
	}
}
