package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/barbershop"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the endpoints that run without a tenant header.
type PublicHandler struct {
	shops *barbershop.Barbershops
}

func NewPublicHandler(shops *barbershop.Barbershops) *PublicHandler {
	return &PublicHandler{shops: shops}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type RegisterBarbershopRequest struct {
	Name          string `json:"name" binding:"required"`
	Slug          string `json:"slug" binding:"required"`
	Timezone      string `json:"timezone"`
	AdminName     string `json:"adminName" binding:"required"`
	AdminEmail    string `json:"adminEmail" binding:"required,email"`
	AdminPassword string `json:"adminPassword" binding:"required"`
}

type RegisterBarbershopResponse struct {
	Barbershop   *models.Barbershop   `json:"barbershop"`
	Admin        *models.Professional `json:"admin"`
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
}

type PublicBarbershopResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"isActive"`
}

////////////////////////////////////////////////////////
// REGISTER
////////////////////////////////////////////////////////

func (h *PublicHandler) Register(c *gin.Context) {
	var req RegisterBarbershopRequest
	if !bindJSON(c, &req) {
		return
	}

	reg, err := h.shops.Register(c.Request.Context(), barbershop.RegisterInput{
		Name:          req.Name,
		Slug:          req.Slug,
		Timezone:      req.Timezone,
		AdminName:     req.AdminName,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, RegisterBarbershopResponse{
		Barbershop:   reg.Barbershop,
		Admin:        reg.Admin,
		AccessToken:  reg.Tokens.AccessToken,
		RefreshToken: reg.Tokens.RefreshToken,
	})
}

////////////////////////////////////////////////////////
// INFO
////////////////////////////////////////////////////////

func (h *PublicHandler) Barbershop(c *gin.Context) {
	shop, err := h.shops.Lookup(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, PublicBarbershopResponse{
		ID:       shop.ID,
		Name:     shop.Name,
		Slug:     shop.Slug,
		IsActive: shop.IsActive,
	})
}
