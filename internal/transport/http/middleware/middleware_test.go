package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"clinic-appointments/internal/core/auth"
	"clinic-appointments/internal/transport/http/ez"
	resp "clinic-appointments/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

func code(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var r resp.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &r); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return r.Code
}

type banList map[string]bool

func (b banList) Active(_ context.Context, uid string) (bool, error) { return !b[uid], nil }

func TestAuthJWTRejectsDisabledAccount(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("k"), Issuer: "clinic", TTL: time.Hour, Subjects: banList{"u2": true}}
	r := gin.New()
	r.GET("/me", AuthJWT(j, ""), func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(nil)) })

	call := func(uid string) int {
		tok, _ := j.Issue(uid, uid+"@clinic.test", "user")
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return code(t, w)
	}
	if got := call("u1"); got != resp.CodeOK {
		t.Fatalf("active code = %d", got)
	}
	if got := call("u2"); got != resp.CodeForbidden {
		t.Fatalf("disabled code = %d", got)
	}
}

func TestRateLimitPerIPIsolatesClients(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(0.001, 1))
	r.GET("/x", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(nil)) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return code(t, w)
	}
	if hit("10.0.0.1") != 0 || hit("10.0.0.2") != 0 {
		t.Fatal("first request per ip should pass")
	}
	if got := hit("10.0.0.1"); got != resp.CodeTooMany {
		t.Fatalf("second request code = %d", got)
	}
}

func TestIPLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	l := newIPLimiter(rate.Limit(1), 1, 3*time.Minute, func() time.Time { return now })

	l.allow("10.0.0.1")
	l.allow("10.0.0.2")
	if l.size() != 2 {
		t.Fatalf("size = %d", l.size())
	}

	now = now.Add(2 * time.Minute)
	l.allow("10.0.0.2")
	if l.size() != 2 {
		t.Fatalf("evicted too early: size = %d", l.size())
	}

	now = now.Add(2 * time.Minute)
	l.allow("10.0.0.3")
	if l.size() != 2 {
		t.Fatalf("idle client kept: size = %d", l.size())
	}
	if !l.allow("10.0.0.1") {
		t.Fatal("evicted client should start with a full bucket")
	}
}

func TestAuthJWTSetsContext(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("k"), Issuer: "clinic", TTL: time.Hour}
	r := gin.New()
	r.GET("/me", AuthJWT(j, ""), func(c *gin.Context) {
		c.JSON(http.StatusOK, resp.OK(gin.H{
			"uid": c.GetString(ez.KeyUserID), "role": c.GetString(ez.KeyRole), "email": c.GetString(ez.KeyEmail),
		}))
	})
	r.GET("/admin", AuthJWT(j, "admin"), func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(nil)) })

	tok, _ := j.Issue("u1", "u1@clinic.test", "user")
	call := func(path, bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := call("/me", tok)
	var out struct {
		Data map[string]string `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Data["uid"] != "u1" || out.Data["role"] != "user" || out.Data["email"] != "u1@clinic.test" {
		t.Fatalf("context = %v", out.Data)
	}
	if got := code(t, call("/me", "")); got != resp.CodeUnauthorized {
		t.Fatalf("missing token code = %d", got)
	}
	if got := code(t, call("/me", "garbage")); got != resp.CodeUnauthorized {
		t.Fatalf("bad token code = %d", got)
	}
	if got := code(t, call("/admin", tok)); got != resp.CodeForbidden {
		t.Fatalf("role gate code = %d", got)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	cases := []struct {
		name, in string
		keep     bool
	}{
		{"passthrough", "req-123", true},
		{"missing", "", false},
		{"control chars", "a\tb", false},
		{"too long", strings.Repeat("a", 65), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.in != "" {
				req.Header.Set(KeyRequestID, tc.in)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			got := w.Header().Get(KeyRequestID)
			if got != w.Body.String() {
				t.Fatalf("header %q != ctx %q", got, w.Body.String())
			}
			if tc.keep && got != tc.in {
				t.Fatalf("id = %q, want %q", got, tc.in)
			}
			if !tc.keep && (got == tc.in || len(got) != 36) {
				t.Fatalf("id = %q, want generated uuid", got)
			}
		})
	}
}

func TestConcurrencyLimitRejectsWhenFull(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	r := gin.New()
	r.Use(ConcurrencyLimit(1))
	r.GET("/slow", func(c *gin.Context) {
		close(entered)
		<-release
		c.JSON(http.StatusOK, resp.OK(nil))
	})
	r.GET("/fast", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(nil)) })

	done := make(chan *httptest.ResponseRecorder)
	go func() {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
		done <- w
	}()
	<-entered

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))
	if got := code(t, w); got != resp.CodeServerError {
		t.Fatalf("busy code = %d", got)
	}

	close(release)
	if got := code(t, <-done); got != resp.CodeOK {
		t.Fatalf("slow code = %d", got)
	}
}
