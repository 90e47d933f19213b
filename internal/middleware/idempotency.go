package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go-ess/internal/shared/contextutil"
	"go-ess/internal/shared/response"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader   = "Idempotency-Key"
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour

	ctxIdempotencyCacheKey = "idempotency_cache_key"
	ctxIdempotencyLockKey  = "idempotency_lock_key"
)

// Idempotency replays a cached success for a repeated Idempotency-Key and
// rejects a duplicate while the first request is still running.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L()).Named("middleware.idempotency")

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString("user_id"), idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached json.RawMessage
			if json.Unmarshal([]byte(val), &cached) == nil {
				log.Debug("idempotent replay", zap.String("key", cacheKey))
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock unavailable, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "Your request is still being processed, please wait.", nil)
			c.Abort()
			return
		}

		c.Set(ctxIdempotencyCacheKey, cacheKey)
		c.Set(ctxIdempotencyLockKey, lockKey)

		c.Next()
	}
}

// ReleaseIdempotency drops the in-flight lock. Handlers defer it.
func ReleaseIdempotency(c *gin.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if lk := c.GetString(ctxIdempotencyLockKey); lk != "" {
		_ = rdb.Del(c.Request.Context(), lk).Err()
	}
}

// RememberIdempotent caches a successful payload for replay.
func RememberIdempotent(c *gin.Context, rdb *redis.Client, payload any) {
	if rdb == nil {
		return
	}
	ck := c.GetString(ctxIdempotencyCacheKey)
	if ck == "" {
		return
	}
	if body, err := json.Marshal(payload); err == nil {
		_ = rdb.Set(c.Request.Context(), ck, body, idempotencyCacheTTL).Err()
	}
}
