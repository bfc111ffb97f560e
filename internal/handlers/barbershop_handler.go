package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-saas/internal/middleware"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/barbershop"
)

type BarbershopHandler struct {
	shops *barbershop.Barbershops
}

func NewBarbershopHandler(shops *barbershop.Barbershops) *BarbershopHandler {
	return &BarbershopHandler{shops: shops}
}

type UpdateBarbershopRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
	Timezone *string `json:"timezone"`
}

// Get returns the resolved tenant. No authentication is required.
func (h *BarbershopHandler) Get(c *gin.Context) {
	httpresp.OK(c, middleware.Barbershop(c))
}

func (h *BarbershopHandler) Update(c *gin.Context) {
	var req UpdateBarbershopRequest
	if !bindJSON(c, &req) {
		return
	}

	shop, err := h.shops.Update(c.Request.Context(), middleware.Actor(c), middleware.Barbershop(c), barbershop.UpdateInput{
		Name:     req.Name,
		IsActive: req.IsActive,
		Timezone: req.Timezone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, shop)
}
