package response

// Resp 统一响应包；HTTP 状态码固定 200，业务码看 code
type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// Page 分页列表，items 永远输出数组
type Page[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

func NewPage[T any](total int64, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Total: total, Items: items}
}

// New 保证 data 不为 null
func New(code int, msg string, data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data any) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error customMsg 为空时用 CodeMsgMap 的默认文案
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, nil)
}
