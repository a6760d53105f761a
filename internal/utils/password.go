package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes       = 16
	pbkdf2Iter      = 10000
	pbkdf2KeyLength = 32
)

// GenerateSalt 生成随机盐值
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword 用盐值对密码做 PBKDF2 派生。空密码返回空串，表示空口令账户。
func HashPassword(salt, password string) string {
	if password == "" {
		return ""
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iter, pbkdf2KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword 验证密码。存储哈希为空时只有空密码能通过，
// 否则用同样的参数重新派生并做常数时间比较。
func VerifyPassword(salt, password, storedHash string) bool {
	if storedHash == "" {
		return password == ""
	}
	derived := HashPassword(salt, password)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(storedHash)) == 1
}
