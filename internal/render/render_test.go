package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyPlaceholders(t *testing.T) {
	out := Apply("你好，{{name}}！今天是{{day}}。", map[string]string{
		"name": "小明",
		"day":  "周五",
	})
	if out != "你好，小明！今天是周五。" {
		t.Errorf("got %q", out)
	}
}

func TestApplyMissingKeyEmpty(t *testing.T) {
	out := Apply("[{{missing}}]", map[string]string{})
	if out != "[]" {
		t.Errorf("缺失键应替换为空，got %q", out)
	}
}

func TestApplyIfBlock(t *testing.T) {
	tpl := "{{#if logged_in}}欢迎 {{name}}{{/if}}{{#if guest}}请登录{{/if}}"

	tests := []struct {
		name string
		data map[string]string
		want string
	}{
		{"真值展开", map[string]string{"logged_in": "true", "name": "alice"}, "欢迎 alice"},
		{"空值隐藏", map[string]string{"guest": ""}, ""},
		{"false 隐藏", map[string]string{"logged_in": "false"}, ""},
		{"另一分支", map[string]string{"guest": "yes"}, "请登录"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(tpl, tt.data); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestApplyIfBlockMultiline(t *testing.T) {
	tpl := "{{#if show}}\n第一行\n第二行\n{{/if}}"
	out := Apply(tpl, map[string]string{"show": "1"})
	if !strings.Contains(out, "第一行") || !strings.Contains(out, "第二行") {
		t.Errorf("条件块应支持跨行内容，got %q", out)
	}
}

func TestFileRenderer(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.html"), []byte("<h1>{{title}}</h1>"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewFileRenderer(dir)
	out, err := r.Render("page.html", map[string]string{"title": "标题"})
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if out != "<h1>标题</h1>" {
		t.Errorf("got %q", out)
	}

	if _, err := r.Render("missing.html", nil); err == nil {
		t.Error("缺失模板应报错")
	}
}
