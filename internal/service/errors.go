package service

import (
	"errors"
	"fmt"
)

// 服务层返回的错误都可以用 errors.Is 判断属于下面哪一类
var (
	ErrValidation     = errors.New("参数错误")
	ErrConflict       = errors.New("资源冲突")
	ErrAuthentication = errors.New("用户未登录")
	ErrAuthorization  = errors.New("权限不足")
	ErrNotFound       = errors.New("资源不存在")
	ErrStorage        = errors.New("存储服务异常")
)

type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func storageError(err error) error {
	return &Error{Kind: ErrStorage, Message: ErrStorage.Error(), Err: err}
}

// Message 返回可以直接展示给用户的错误信息，存储错误不暴露底层细节
func Message(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}

	return ErrStorage.Error()
}
