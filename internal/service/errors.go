package service

import (
	"errors"
	"strings"
)

var (
	// ErrEmailTaken 注册撞唯一索引，由存储层错误映射而来
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFoundOrUnauthorized 故意合并"不存在"和"不是你的"，避免泄露他人记录的存在性
	ErrNotFoundOrUnauthorized = errors.New("Mentorship not found or unauthorized")
	// ErrForbidden 只能操作自己的资料
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
)

// isDupKey 不依赖具体驱动的错误类型，按文案兜底判断唯一冲突
func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
