package utils

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my file  name.txt", "my_file_name.txt"},
		{"../../etc/passwd", "etc_passwd"},
		{`a\b:c*d?e"f<g>h|i.png`, "a_b_c_d_e_f_g_h_i.png"},
		{"...___...", "file"},
		{"", "file"},
		{"__trimmed__.doc", "trimmed__.doc"},
		{"中文 文件.png", "中文_文件.png"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStoredFilename(t *testing.T) {
	a := StoredFilename("a.png")
	b := StoredFilename("a.png")

	if a == b {
		t.Error("两次生成的落盘文件名不应相同")
	}
	if !strings.HasSuffix(a, "_a.png") {
		t.Errorf("落盘文件名应以清理后的原名结尾，got %q", a)
	}
	if strings.Count(a, "_") < 2 {
		t.Errorf("落盘文件名应有时间戳和随机前缀，got %q", a)
	}
}
