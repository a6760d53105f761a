// Package multipart 实现对 multipart/form-data 请求体的单遍解析。
// 输入为完整缓冲的字节切片，按边界切分后把每个部分归类为
// 普通字段或上传文件；格式不完整的部分跳过而不报错。
// 本身不限制大小，调用方需在上游限制请求体体积。
package multipart

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"strings"
)

// File 一个上传的文件部分
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Form 解析结果：字段名到值、字段名到文件
type Form struct {
	Fields map[string]string
	Files  map[string]*File
}

var ErrNoBoundary = errors.New("Content-Type 中缺少 boundary")

// Parse 按 Content-Type 中的 boundary 解析请求体
func Parse(body []byte, contentType string) (*Form, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("解析 Content-Type 失败: %w", err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("不是 multipart 类型: %s", mediaType)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, ErrNoBoundary
	}

	form := &Form{
		Fields: make(map[string]string),
		Files:  make(map[string]*File),
	}

	delimiter := []byte("--" + boundary)
	segments := bytes.Split(body, delimiter)

	// 第一段是前导，最后一段是 "--" 结尾，两者都不含有效部分
	for _, segment := range segments {
		part := trimPart(segment)
		if part == nil {
			continue
		}
		parsePart(part, form)
	}

	return form, nil
}

// trimPart 去掉段首尾的换行，过滤掉结束符段和空段
func trimPart(segment []byte) []byte {
	if len(segment) == 0 {
		return nil
	}
	if bytes.HasPrefix(segment, []byte("--")) {
		return nil
	}
	segment = bytes.TrimPrefix(segment, []byte("\r\n"))
	segment = bytes.TrimPrefix(segment, []byte("\n"))
	segment = bytes.TrimSuffix(segment, []byte("\r\n"))
	segment = bytes.TrimSuffix(segment, []byte("\n"))
	if len(segment) == 0 {
		return nil
	}
	return segment
}

// parsePart 拆出头部块和正文，按 Content-Disposition 归类。
// 缺少 disposition 或字段名的部分直接跳过。
func parsePart(part []byte, form *Form) {
	headerBlock, content, ok := splitHeaders(part)
	if !ok {
		return
	}

	name, filename, contentType := parseHeaders(headerBlock)
	if name == "" {
		return
	}

	if filename != "" {
		form.Files[name] = &File{
			Filename:    filename,
			ContentType: contentType,
			Content:     content,
		}
	} else {
		form.Fields[name] = string(content)
	}
}

// splitHeaders 在第一个空行处把部分拆成头部块和正文
func splitHeaders(part []byte) (headers, content []byte, ok bool) {
	if idx := bytes.Index(part, []byte("\r\n\r\n")); idx >= 0 {
		return part[:idx], part[idx+4:], true
	}
	if idx := bytes.Index(part, []byte("\n\n")); idx >= 0 {
		return part[:idx], part[idx+2:], true
	}
	return nil, nil, false
}

// parseHeaders 从头部块提取字段名、文件名和内容类型。
// 扩展形式的 filename*（RFC 5987 百分号编码）优先于普通的带引号 filename。
func parseHeaders(block []byte) (name, filename, contentType string) {
	for _, line := range strings.Split(string(block), "\n") {
		line = strings.TrimRight(line, "\r")
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "content-disposition:"):
			value := strings.TrimSpace(line[len("content-disposition:"):])
			name, filename = parseDisposition(value)
		case strings.HasPrefix(lower, "content-type:"):
			contentType = strings.TrimSpace(line[len("content-type:"):])
		}
	}
	return name, filename, contentType
}

func parseDisposition(value string) (name, filename string) {
	var extFilename string

	for _, param := range strings.Split(value, ";") {
		param = strings.TrimSpace(param)
		key, val, found := strings.Cut(param, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)

		switch key {
		case "name":
			name = strings.Trim(val, `"`)
		case "filename":
			filename = strings.Trim(val, `"`)
		case "filename*":
			extFilename = decodeExtendedFilename(val)
		}
	}

	if extFilename != "" {
		filename = extFilename
	}
	return name, filename
}

// decodeExtendedFilename 解析 RFC 5987 形式：charset'lang'percent-encoded
func decodeExtendedFilename(value string) string {
	parts := strings.SplitN(value, "'", 3)
	if len(parts) != 3 {
		return ""
	}
	decoded, err := url.PathUnescape(parts[2])
	if err != nil {
		return ""
	}
	return decoded
}
