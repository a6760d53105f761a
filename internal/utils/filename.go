package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	hostileChars   = regexp.MustCompile(`[/\\:*?"<>|]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SanitizeFilename 清理上传文件的原始文件名：
// 路径敏感字符和连续空白替换为下划线，去掉首尾的下划线和点，空结果回退为 file。
func SanitizeFilename(name string) string {
	name = hostileChars.ReplaceAllString(name, "_")
	name = whitespaceRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_.")
	if name == "" {
		name = "file"
	}
	return name
}

// StoredFilename 生成落盘文件名：时间戳加随机后缀前缀，保证跨用户不冲突
func StoredFilename(originalName string) string {
	return fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), uuid.NewString()[:8], SanitizeFilename(originalName))
}
