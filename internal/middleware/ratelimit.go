package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
)

const rateWindow = time.Minute

// RateLimit allows limit requests per client IP and route per minute. With
// no Redis client, or when Redis fails, requests pass.
func RateLimit(rdb *redis.Client, limit int) gin.HandlerFunc {
	if rdb == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		window := time.Now().Unix() / int64(rateWindow/time.Second)
		key := fmt.Sprintf("rl:%s:%s:%d", c.ClientIP(), c.FullPath(), window)

		ctx := c.Request.Context()
		var incr *redis.IntCmd
		_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, rateWindow)
			return nil
		})
		if err != nil {
			log.Printf("rate limit: %v", err)
			c.Next()
			return
		}

		count := incr.Val()
		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(rateWindow/time.Second)))
			httperr.Abort(c, http.StatusTooManyRequests, "too_many_requests", "Demasiadas solicitudes. Intenta en un momento.")
			return
		}

		c.Next()
	}
}
