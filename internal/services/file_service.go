// internal/services/file_service.go
package services

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/multipart"
	"github.com/Limkon/Netnope-sub000/internal/utils"

	"github.com/sirupsen/logrus"
)

// FileService 负责附件文件的落盘和清理。
// 每个用户一个上传子目录，落盘文件名带时间戳和随机后缀。
type FileService struct {
	uploadPath string
}

func NewFileService(uploadPath string) *FileService {
	return &FileService{uploadPath: uploadPath}
}

// SaveUpload 把上传内容写入用户目录，返回附件元数据。
// Path 使用斜杠分隔的相对路径，跨平台落盘时再转换。
func (s *FileService) SaveUpload(userID string, file *multipart.File) (*models.Attachment, error) {
	stored := utils.StoredFilename(file.Filename)

	userDir := filepath.Join(s.uploadPath, userID)
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}

	if err := os.WriteFile(filepath.Join(userDir, stored), file.Content, 0644); err != nil {
		return nil, fmt.Errorf("保存文件失败: %w", err)
	}

	return &models.Attachment{
		OriginalName: file.Filename,
		Path:         path.Join(userID, stored),
		MimeType:     file.ContentType,
		Size:         int64(len(file.Content)),
	}, nil
}

// Remove 删除附件物理文件，失败只记日志
func (s *FileService) Remove(att *models.Attachment) {
	if att == nil || att.Path == "" {
		return
	}
	full := filepath.Join(s.uploadPath, filepath.FromSlash(att.Path))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", full).Warn("删除附件文件失败")
	}
}

// FilePath 返回某用户目录下文件的绝对路径，文件名只取基名防止目录穿越
func (s *FileService) FilePath(userID, filename string) string {
	return filepath.Join(s.uploadPath, filepath.Base(userID), filepath.Base(filename))
}
