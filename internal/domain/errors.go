package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound 请求的用户/预约不存在
var ErrNotFound = errors.New("not found")

func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// ErrConflict 唯一键冲突：email 已被占用、id 重复
var ErrConflict = errors.New("already exists")

func Conflict(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, ErrConflict)
}

// ValidationError 入参不合法，不会触发存储调用
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// StorageError 存储读写失败；不自动重试
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
