package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Key 拼接命名空间，如 Key("user", "profile", uid) => user:profile:<uid>
func Key(parts ...string) string { return strings.Join(parts, ":") }

// GetOrLoadJSON 读穿缓存。c 为 nil 时直接回源；缓存里的脏数据解不开时删掉再回源一次。
// load 返回的错误不缓存，NotFound 之后的写入马上可见。
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	if c == nil {
		return load(ctx)
	}
	fill := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}
	b, err := c.GetOrLoad(ctx, key, ttl, fill)
	if err != nil {
		return nil, err
	}
	out, err := decode[T](b)
	if err == nil {
		return out, nil
	}
	_ = c.Del(ctx, key)
	if b, err = c.GetOrLoad(ctx, key, ttl, fill); err != nil {
		return nil, err
	}
	return decode[T](b)
}

func decode[T any](b []byte) (*T, error) {
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
