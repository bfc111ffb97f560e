package middleware

import (
	"context"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
	"github.com/BruksfildServices01/barbershop-saas/internal/ratelimit"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Result, error)
}

// KeyFunc names the bucket a request counts against.
type KeyFunc func(c *gin.Context) string

// ByClientIP buckets per client address, within the tenant when one is
// resolved.
func ByClientIP(c *gin.Context) string {
	if v, ok := c.Get(ContextBarbershop); ok {
		return v.(*models.Barbershop).ID + ":" + c.ClientIP()
	}
	return c.ClientIP()
}

// ByProfessional buckets per authenticated professional.
func ByProfessional(c *gin.Context) string {
	p, _ := Principal(c)
	return p.TenantID + ":" + p.ProfessionalID
}

// RateLimitMiddleware lets the request through when the store is unavailable.
func RateLimitMiddleware(l Limiter, key KeyFunc, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := l.Allow(c.Request.Context(), key(c))
		if err != nil {
			log.Warn("rate limiter unavailable",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		reset := strconv.Itoa(int(math.Ceil(res.ResetIn.Seconds())))
		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		h.Set("X-RateLimit-Reset", reset)

		if !res.Allowed {
			h.Set("Retry-After", reset)
			httperr.Respond(c, httperr.ErrRateLimited())
			return
		}

		c.Next()
	}
}
