package services

import "errors"

// 业务错误，由 handler 映射到对应的状态码
var (
	ErrUsernameTaken       = errors.New("用户名已存在")
	ErrInvalidCredentials  = errors.New("用户名或密码错误")
	ErrPermissionDenied    = errors.New("无权限执行该操作")
	ErrLastAdmin           = errors.New("不能删除最后一个管理员")
	ErrNotPublished        = errors.New("文章未发布，不能评论")
	ErrAnonymousNotAllowed = errors.New("不允许匿名评论")
)
