package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/auth"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
)

type Authenticator interface {
	Authenticate(ctx context.Context, tenantID, accessToken string) (*auth.Principal, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", httperr.ErrUnauthorized("missing_authorization_header", "Authorization header is required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", httperr.ErrUnauthorized("invalid_authorization_header", "Authorization header must be a bearer token")
	}

	return strings.TrimSpace(parts[1]), nil
}

// AuthMiddleware must run after TenantMiddleware; tokens are only valid for
// the tenant that issued them.
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		p, err := authn.Authenticate(c.Request.Context(), Barbershop(c).ID, token)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		c.Set(ContextPrincipal, *p)
		c.Next()
	}
}

// Authorize checks the capability table for the authenticated caller and
// stores the resulting Actor.
func Authorize(guard *authz.Guard, res authz.Resource, act authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			httperr.Respond(c, httperr.ErrUnauthorized("unauthorized", "Authentication required"))
			return
		}

		scope, err := guard.Authorize(p.Role, res, act)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		c.Set(ContextActor, authz.Actor{
			TenantID:       p.TenantID,
			ProfessionalID: p.ProfessionalID,
			Role:           p.Role,
			Scope:          scope,
		})
		c.Next()
	}
}
