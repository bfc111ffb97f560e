package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
)

// Paging holds the list defaults shared by every list endpoint.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

func (p Paging) from(c *gin.Context) dto.Page {
	return dto.ParsePage(c.Query("page"), c.Query("limit"), p.DefaultLimit, p.MaxLimit)
}

// bindJSON writes a 400 and returns false when the body does not bind.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

func queryBool(c *gin.Context, key string) bool {
	return c.Query(key) == "true"
}
