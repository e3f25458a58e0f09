package middlewares

import (
	"crypto/rand"
	"encoding/hex"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"code.cloudfoundry.org/lager"
	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/passcheck-api/internal/api/apperr"
)

// --------- Config ---------

// RateLimitConfig drives both limiters; zero values disable the matching limiter.
type RateLimitConfig struct {
	RatePerSecond float64       // token refill rate
	Burst         int           // bucket capacity
	WindowLimit   int           // requests allowed per Window
	Window        time.Duration // sliding window length
}

// LoadRateLimitFromEnv reads RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_WINDOW_MAX
// and RATE_LIMIT_WINDOW.
func LoadRateLimitFromEnv() RateLimitConfig {
	return RateLimitConfig{
		RatePerSecond: envFloat("RATE_LIMIT_RPS", 5),
		Burst:         envInt("RATE_LIMIT_BURST", 20),
		WindowLimit:   envInt("RATE_LIMIT_WINDOW_MAX", 3000),
		Window:        envDur("RATE_LIMIT_WINDOW", "1h"),
	}
}

// RateLimit returns the token bucket then the sliding window, outermost first.
func RateLimit(rdb *redis.Client, cfg RateLimitConfig, logger lager.Logger) []func(http.Handler) http.Handler {
	var out []func(http.Handler) http.Handler
	if cfg.RatePerSecond > 0 && cfg.Burst > 0 {
		out = append(out, NewRedisTokenBucket(rdb, cfg.RatePerSecond, cfg.Burst, PerIPKey("pc:tb"), logger).Middleware)
	}
	if cfg.WindowLimit > 0 && cfg.Window > 0 {
		out = append(out, NewRedisSlidingWindow(rdb, cfg.WindowLimit, cfg.Window, PerIPKey("pc:sw"), logger).Middleware)
	}
	return out
}

// --------- Key helpers ---------

type KeyFunc func(r *http.Request) string

// PerIPKey keys on the client address only; nothing derived from the body is used.
func PerIPKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		ip := clientIP(r)
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + ip
	}
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For may have a list: client, proxy1, proxy2...
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func tooManyRequests(w http.ResponseWriter, r *http.Request, retrySec int64) {
	w.Header().Set("Retry-After", strconv.FormatInt(retrySec, 10))
	p := apperr.New(http.StatusTooManyRequests, apperr.CodeRateLimited, "rate limit exceeded")
	p.Retryable = true
	apperr.Write(w, r, p)
}

// --------- Token Bucket (Redis + Lua) ---------

const tokenBucketLua = `
-- KEYS[1] = bucket key (hash with fields: tokens, ts)
-- ARGV[1] = ratePerS (float)
-- ARGV[2] = capacity (int)
-- Returns: {allowed (1/0), remaining_tokens (int), retry_after_ms (int)}
local key   = KEYS[1]
local rate  = tonumber(ARGV[1])
local cap   = tonumber(ARGV[2])

local t = redis.call('TIME')
local now_ms = (tonumber(t[1]) * 1000) + math.floor(tonumber(t[2]) / 1000)

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])

if tokens == nil then
  tokens = cap
  ts = now_ms
end

local delta_ms = now_ms - ts
if delta_ms > 0 then
  tokens = math.min(cap, tokens + (delta_ms / 1000.0) * rate)
end

local allowed = 0
local retry_after_ms = 0

if tokens >= 1.0 then
  tokens = tokens - 1.0
  allowed = 1
else
  retry_after_ms = math.ceil((1.0 - tokens) * 1000.0 / rate)
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now_ms)
redis.call('PEXPIRE', key, math.ceil((cap / rate) * 1000.0))

return {allowed, math.floor(tokens), retry_after_ms}
`

type RedisTokenBucket struct {
	rdb      *redis.Client
	keyFn    KeyFunc
	ratePerS float64 // tokens per second
	burst    int     // bucket capacity
	script   *redis.Script
	logger   lager.Logger
}

func NewRedisTokenBucket(rdb *redis.Client, ratePerSecond float64, burst int, keyFn KeyFunc, logger lager.Logger) *RedisTokenBucket {
	return &RedisTokenBucket{
		rdb:      rdb,
		keyFn:    keyFn,
		ratePerS: ratePerSecond,
		burst:    burst,
		script:   redis.NewScript(tokenBucketLua),
		logger:   logger.Session("rate-limit", lager.Data{"policy": "token-bucket"}),
	}
}

func (tb *RedisTokenBucket) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := tb.keyFn(r)

		res, err := tb.script.Run(r.Context(), tb.rdb, []string{key},
			strconv.FormatFloat(tb.ratePerS, 'f', -1, 64),
			strconv.Itoa(tb.burst),
		).Int64Slice()
		if err != nil || len(res) != 3 {
			tb.logger.Error("redis-failed-open", err, lager.Data{"request_id": GetRequestID(r)})
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Policy", "token-bucket")
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(tb.burst))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))

		if res[0] != 1 {
			sec := max(1, (res[2]+999)/1000)
			tb.logger.Info("blocked", lager.Data{"key": key, "retry_after_s": sec, "request_id": GetRequestID(r)})
			tooManyRequests(w, r, sec)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// --------- Sliding Window (Redis ZSET) ---------

type RedisSlidingWindow struct {
	rdb    *redis.Client
	keyFn  KeyFunc
	limit  int
	window time.Duration
	logger lager.Logger
}

func NewRedisSlidingWindow(rdb *redis.Client, limit int, window time.Duration, keyFn KeyFunc, logger lager.Logger) *RedisSlidingWindow {
	return &RedisSlidingWindow{
		rdb:    rdb,
		keyFn:  keyFn,
		limit:  limit,
		window: window,
		logger: logger.Session("rate-limit", lager.Data{"policy": "sliding-window"}),
	}
}

func (sw *RedisSlidingWindow) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().UnixMilli()
		windowMs := sw.window.Milliseconds()
		key := sw.keyFn(r)

		pipe := sw.rdb.TxPipeline()
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: strconv.FormatInt(now, 10) + ":" + randomSuffix()})
		pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(now-windowMs, 10))
		countCmd := pipe.ZCard(ctx, key)
		pipe.PExpire(ctx, key, sw.window+time.Second)
		if _, err := pipe.Exec(ctx); err != nil {
			sw.logger.Error("redis-failed-open", err, lager.Data{"request_id": GetRequestID(r)})
			next.ServeHTTP(w, r)
			return
		}
		count := int(countCmd.Val())

		w.Header().Set("X-RateLimit-Policy", "sliding-window")
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(sw.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, sw.limit-count)))

		if count > sw.limit {
			var retrySec int64 = 1
			if oldest, err := sw.rdb.ZRangeWithScores(ctx, key, 0, 0).Result(); err == nil && len(oldest) == 1 {
				ms := max(1000, int64(oldest[0].Score)+windowMs-now)
				retrySec = (ms + 999) / 1000
			}
			sw.logger.Info("blocked", lager.Data{"key": key, "retry_after_s": retrySec, "request_id": GetRequestID(r)})
			tooManyRequests(w, r, retrySec)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// --------- utils ---------

func randomSuffix() string {
	var b [6]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDur(k, def string) time.Duration {
	s := def
	if v := os.Getenv(k); v != "" {
		s = v
	}
	d, _ := time.ParseDuration(s)
	return d
}
