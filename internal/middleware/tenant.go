package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

type TenantResolver interface {
	Resolve(ctx context.Context, slug string) (*models.Barbershop, error)
}

// TenantMiddleware resolves the barbershop named by header before anything
// else runs. Unknown, inactive or missing slugs end the request with 404.
func TenantMiddleware(resolver TenantResolver, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, err := resolver.Resolve(c.Request.Context(), c.GetHeader(header))
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		c.Set(ContextBarbershop, shop)
		c.Next()
	}
}
