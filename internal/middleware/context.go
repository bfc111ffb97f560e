package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/auth"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

const (
	ContextRequestID  = "requestID"
	ContextBarbershop = "barbershop"
	ContextPrincipal  = "principal"
	ContextActor      = "actor"
)

func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

// Barbershop returns the tenant resolved by TenantMiddleware.
func Barbershop(c *gin.Context) *models.Barbershop {
	return c.MustGet(ContextBarbershop).(*models.Barbershop)
}

func Principal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// Actor returns the caller together with the scope granted by Authorize.
func Actor(c *gin.Context) authz.Actor {
	return c.MustGet(ContextActor).(authz.Actor)
}
