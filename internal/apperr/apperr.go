package apperr

import (
	"errors"
	"net/http"
)

// Kind 错误分类，决定HTTP状态码
type Kind int

const (
	KindUnknown      Kind = iota
	KindValidation        // 参数校验失败 -> 400
	KindUnauthorized      // 缺少调用者身份 -> 401
	KindForbidden         // 无权执行该操作 -> 403
	KindNotFound          // 资源不存在 -> 404
	KindConflict          // 实体状态不允许该操作 -> 409
	KindUnavailable       // 存储层不可用 -> 500
)

// Error 业务错误，附带分类信息
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation 参数校验错误
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Unauthorized 缺少身份错误
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden 权限错误
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound 资源不存在错误
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict 状态冲突错误
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unavailable 存储层不可用错误，调用方可整体重试
func Unavailable(message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

// KindOf 提取错误分类，非业务错误归为 unknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus 错误分类到HTTP状态码的映射
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
