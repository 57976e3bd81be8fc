package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitStore 滑动窗口限流存储
// Admit 判定并记录一次请求；拒绝时不记录本次尝试
type RateLimitStore interface {
	Admit(ctx context.Context, key string) (bool, error)
}

// MemoryStore 进程内滑动窗口存储
// 状态只存活于单个实例，实例回收或多实例部署下各自计数，
// 这是刻意保留的 best-effort 语义
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryStore 创建进程内限流存储
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		windows: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Admit 滑动窗口判定：先剔除窗口外的时间戳再计数
func (s *MemoryStore) Admit(ctx context.Context, key string) (bool, error) {
	now := s.now()
	cutoff := now.Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	timestamps := s.windows[key]
	kept := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= s.limit {
		s.windows[key] = kept
		return false, nil
	}

	s.windows[key] = append(kept, now)
	return true, nil
}

// RedisStore 基于 Redis 有序集合的滑动窗口存储
// 多实例部署共享同一个窗口
type RedisStore struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisStore 创建 Redis 限流存储
func NewRedisStore(client *redis.Client, limit int, window time.Duration) *RedisStore {
	return &RedisStore{client: client, limit: limit, window: window}
}

// Admit 滑动窗口判定，成员为纳秒时间戳
func (s *RedisStore) Admit(ctx context.Context, key string) (bool, error) {
	now := time.Now()
	redisKey := "ratelimit:" + key
	cutoff := strconv.FormatInt(now.Add(-s.window).UnixNano(), 10)

	if err := s.client.ZRemRangeByScore(ctx, redisKey, "0", cutoff).Err(); err != nil {
		return false, err
	}

	count, err := s.client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count >= int64(s.limit) {
		return false, nil
	}

	member := strconv.FormatInt(now.UnixNano(), 10)
	if err := s.client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: member,
	}).Err(); err != nil {
		return false, err
	}
	s.client.Expire(ctx, redisKey, s.window)

	return true, nil
}

// ResolveClientKey 从请求元数据推导客户端标识
// 依次尝试直连 IP 头、转发头首项、两个备用单 IP 头；
// 都缺失时合成每请求唯一的标识，该客户端实际上不受限流约束
func ResolveClientKey(c *gin.Context) string {
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		for i := 0; i < len(forwarded); i++ {
			if forwarded[i] == ',' {
				return forwarded[:i]
			}
		}
		return forwarded
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("True-Client-IP"); ip != "" {
		return ip
	}
	return fmt.Sprintf("unknown-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// RateLimitMiddleware 限流中间件
func RateLimitMiddleware(store RateLimitStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ResolveClientKey(c)

		admitted, err := store.Admit(c.Request.Context(), key)
		if err != nil {
			// 存储故障时放行，限流是 best-effort 保护
			log.Printf("rate limit store error: %v", err)
			c.Next()
			return
		}

		if !admitted {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limited",
				"message": "too many requests",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
