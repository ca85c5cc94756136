package middleware

import (
	"github.com/gin-gonic/gin"

	"clinic-appointments/pkg/utils"
)

// KeyRequestID 请求头与 gin 上下文共用
const KeyRequestID = "X-Request-ID"

const maxRequestIDLen = 64

// RequestID 透传上游 X-Request-ID；缺失或含不可见字符时生成 uuid v7
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(KeyRequestID)
		if !validRequestID(rid) {
			rid = utils.NewID()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}

func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
