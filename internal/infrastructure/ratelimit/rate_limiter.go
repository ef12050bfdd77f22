package ratelimit

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// idleExpiration 客户端限流器闲置多久后回收
const idleExpiration = 10 * time.Minute

// ClientRateLimiter 按客户端（IP）区分的令牌桶限流器
type ClientRateLimiter struct {
	qps      int
	burst    int
	limiters *gocache.Cache
	mu       sync.Mutex
}

// NewClientRateLimiter 创建限流器
// qps: 每个客户端每秒允许的请求数，0或负数表示不限制
// burst: 令牌桶大小，0 时取 qps
func NewClientRateLimiter(qps, burst int) *ClientRateLimiter {
	if burst <= 0 {
		burst = qps
	}
	return &ClientRateLimiter{
		qps:      qps,
		burst:    burst,
		limiters: gocache.New(idleExpiration, 2*idleExpiration),
	}
}

// Enabled 是否启用限流
func (r *ClientRateLimiter) Enabled() bool {
	return r != nil && r.qps > 0
}

// Allow 检查客户端的当前请求是否允许，不阻塞
func (r *ClientRateLimiter) Allow(client string) bool {
	if !r.Enabled() {
		return true
	}
	return r.limiterFor(client).Allow()
}

// GetQPS 获取当前QPS限制，0 表示无限制
func (r *ClientRateLimiter) GetQPS() int {
	if !r.Enabled() {
		return 0
	}
	return r.qps
}

func (r *ClientRateLimiter) limiterFor(client string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.limiters.Get(client); ok {
		// 刷新过期时间
		r.limiters.SetDefault(client, v)
		return v.(*rate.Limiter)
	}

	l := rate.NewLimiter(rate.Limit(r.qps), r.burst)
	r.limiters.SetDefault(client, l)
	return l
}
