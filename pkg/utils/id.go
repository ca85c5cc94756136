package utils

import "github.com/google/uuid"

// NewID 文档 id（uuid v7，按时间有序）
func NewID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
