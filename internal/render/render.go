// Package render 提供页面模板渲染：
// 替换 {{key}} 占位符，并支持 {{#if key}}...{{/if}} 条件块。
// 语法与现有页面资源保持兼容。
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Renderer 模板渲染接口
type Renderer interface {
	Render(name string, data map[string]string) (string, error)
}

var (
	ifBlockRe     = regexp.MustCompile(`(?s)\{\{#if\s+([\w.-]+)\}\}(.*?)\{\{/if\}\}`)
	placeholderRe = regexp.MustCompile(`\{\{([\w.-]+)\}\}`)
)

// FileRenderer 从模板目录读取页面文件并做占位符替换
type FileRenderer struct {
	dir string
}

func NewFileRenderer(dir string) *FileRenderer {
	return &FileRenderer{dir: dir}
}

func (r *FileRenderer) Render(name string, data map[string]string) (string, error) {
	content, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		return "", fmt.Errorf("读取模板失败: %w", err)
	}
	return Apply(string(content), data), nil
}

// Apply 对模板文本执行替换。先处理条件块再处理占位符，
// 条件块不支持嵌套。值为空串或 "false" 视为假。
func Apply(tpl string, data map[string]string) string {
	if data == nil {
		data = map[string]string{}
	}

	tpl = ifBlockRe.ReplaceAllStringFunc(tpl, func(block string) string {
		sub := ifBlockRe.FindStringSubmatch(block)
		if truthy(data[sub[1]]) {
			return sub[2]
		}
		return ""
	})

	return placeholderRe.ReplaceAllStringFunc(tpl, func(ph string) string {
		key := placeholderRe.FindStringSubmatch(ph)[1]
		if val, ok := data[key]; ok {
			return val
		}
		return ""
	})
}

func truthy(val string) bool {
	return val != "" && val != "false"
}
