// Package middleware 限流中间件单元测试
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMemoryStoreSlidingWindow(t *testing.T) {
	base := time.Now()
	current := base

	store := NewMemoryStore(100, 60*time.Second)
	store.now = func() time.Time { return current }

	ctx := context.Background()

	// 前 100 次放行
	for i := 0; i < 100; i++ {
		current = base.Add(time.Duration(i) * 100 * time.Millisecond)
		admitted, err := store.Admit(ctx, "client-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !admitted {
			t.Fatalf("request %d should be admitted", i+1)
		}
	}

	// 第 101 次在窗口内拒绝
	admitted, _ := store.Admit(ctx, "client-a")
	if admitted {
		t.Fatal("request 101 should be rejected")
	}

	// 最早一条过期后重新放出一个名额（滑动窗口，不是整窗重置）
	current = base.Add(60*time.Second + time.Millisecond)
	admitted, _ = store.Admit(ctx, "client-a")
	if !admitted {
		t.Fatal("request should be admitted after oldest entry aged out")
	}
	admitted, _ = store.Admit(ctx, "client-a")
	if admitted {
		t.Fatal("only one slot should reopen")
	}
}

func TestMemoryStoreRejectionNotRecorded(t *testing.T) {
	base := time.Now()
	current := base

	store := NewMemoryStore(2, 60*time.Second)
	store.now = func() time.Time { return current }

	ctx := context.Background()
	store.Admit(ctx, "client-b")
	store.Admit(ctx, "client-b")

	// 被拒的尝试不计入窗口
	for i := 0; i < 10; i++ {
		if admitted, _ := store.Admit(ctx, "client-b"); admitted {
			t.Fatal("request over limit should be rejected")
		}
	}
	if got := len(store.windows["client-b"]); got != 2 {
		t.Fatalf("rejected attempts must not be recorded, window has %d entries", got)
	}
}

func TestMemoryStoreIsolatesKeys(t *testing.T) {
	store := NewMemoryStore(1, 60*time.Second)
	ctx := context.Background()

	if admitted, _ := store.Admit(ctx, "client-a"); !admitted {
		t.Fatal("first request for client-a should be admitted")
	}
	if admitted, _ := store.Admit(ctx, "client-b"); !admitted {
		t.Fatal("client-b has its own window")
	}
	if admitted, _ := store.Admit(ctx, "client-a"); admitted {
		t.Fatal("client-a should be over its limit")
	}
}

func newTestContext(headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestResolveClientKeyHeaderOrder(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "cf connecting ip wins",
			headers: map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Forwarded-For": "2.2.2.2"},
			want:    "1.1.1.1",
		},
		{
			name:    "forwarded for first entry",
			headers: map[string]string{"X-Forwarded-For": "3.3.3.3, 4.4.4.4"},
			want:    "3.3.3.3",
		},
		{
			name:    "real ip fallback",
			headers: map[string]string{"X-Real-IP": "5.5.5.5"},
			want:    "5.5.5.5",
		},
		{
			name:    "true client ip fallback",
			headers: map[string]string{"True-Client-IP": "6.6.6.6"},
			want:    "6.6.6.6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveClientKey(newTestContext(tt.headers)); got != tt.want {
				t.Fatalf("ResolveClientKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveClientKeySynthesized(t *testing.T) {
	// 没有任何头时每个请求得到唯一标识，限流对其失效
	first := ResolveClientKey(newTestContext(nil))
	second := ResolveClientKey(newTestContext(nil))

	if !strings.HasPrefix(first, "unknown-") {
		t.Fatalf("synthesized key %q should start with unknown-", first)
	}
	if first == second {
		t.Fatal("synthesized keys should be unique per request")
	}
}

func TestRateLimitMiddlewareRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := NewMemoryStore(1, 60*time.Second)
	r := gin.New()
	r.Use(RateLimitMiddleware(store))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "9.9.9.9")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d, want 429", code)
	}
}
