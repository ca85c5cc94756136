package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrRevoked  = errors.New("token revoked")
	ErrDisabled = errors.New("account disabled")
)

type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"` // "user" or "admin"
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool { return c != nil && c.Role == "admin" }

// Denylist 登出后的 jti 黑名单；nil 时登出只在客户端生效
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// SubjectChecker 账号是否仍可用；封禁后已签发的 token 立即失效
type SubjectChecker interface {
	Active(ctx context.Context, uid string) (bool, error)
}

type JWTer struct {
	Secret   []byte
	Issuer   string
	TTL      time.Duration
	Denylist Denylist
	Subjects SubjectChecker
}

func (j *JWTer) Issue(uid, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:   uid,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// Verify Parse + 黑名单 + 账号状态
func (j *JWTer) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	c, err := j.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if j.Denylist != nil && c.ID != "" {
		revoked, err := j.Denylist.IsRevoked(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("check denylist: %w", err)
		}
		if revoked {
			return nil, ErrRevoked
		}
	}
	if j.Subjects != nil {
		ok, err := j.Subjects.Active(ctx, c.UID)
		if err != nil {
			return nil, fmt.Errorf("check subject: %w", err)
		}
		if !ok {
			return nil, ErrDisabled
		}
	}
	return c, nil
}

// Revoke 黑名单保留到 token 过期为止
func (j *JWTer) Revoke(ctx context.Context, c *Claims) error {
	if j.Denylist == nil || c == nil || c.ID == "" {
		return nil
	}
	ttl := j.TTL
	if c.ExpiresAt != nil {
		ttl = time.Until(c.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return j.Denylist.Revoke(ctx, c.ID, ttl)
}
