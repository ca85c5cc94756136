package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-appointments/internal/domain"
	resp "clinic-appointments/internal/transport/http/response"
)

// 上下文 key，由 middleware.AuthJWT 写入
const (
	KeyClaims = "claims"
	KeyUserID = "userId"
	KeyRole   = "role"
	KeyEmail  = "email"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string   // "GET" | "POST" | "PUT" | "DELETE"
	Path    string   // 例："/auth/login"、"/appointments/:id/toggle"
	Binder  Binder   // 绑定方式
	Auth    bool     // 是否要求登录（检查 userId）
	Roles   []string // 限定角色（可选）
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在分组下注册动作接口
func RegisterAction[I any, O any](g *gin.RouterGroup, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 鉴权/角色
		if a.Auth {
			if c.GetString(KeyUserID) == "" {
				c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
				return
			}
			if len(a.Roles) > 0 && !hasRole(c.GetString(KeyRole), a.Roles) {
				c.JSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default: // 默认 POST
		g.POST(a.Path, h)
	}
}

// Fail 错误 → 信封；500 不把驱动错误透给客户端，挂到 c.Errors 由访问日志输出
func Fail(c *gin.Context, err error) {
	code, msg := Classify(err)
	if code == resp.CodeServerError {
		_ = c.Error(err)
	}
	c.JSON(http.StatusOK, resp.Error(code, msg))
}

func Classify(err error) (int, string) {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Code == resp.CodeServerError && ae.Msg == "" {
			return ae.Code, "internal error"
		}
		return ae.Code, ae.Error()
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return resp.CodeBadRequest, ve.Error()
	}
	if errors.Is(err, domain.ErrNotFound) {
		return resp.CodeNotFound, err.Error()
	}
	if errors.Is(err, domain.ErrConflict) {
		return resp.CodeConflict, err.Error()
	}
	return resp.CodeServerError, "internal error"
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}
