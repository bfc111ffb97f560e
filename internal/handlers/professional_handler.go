package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-saas/internal/middleware"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/professional"
)

type ProfessionalHandler struct {
	dir    *professional.Directory
	paging Paging
}

func NewProfessionalHandler(dir *professional.Directory, paging Paging) *ProfessionalHandler {
	return &ProfessionalHandler{dir: dir, paging: paging}
}

type CreateProfessionalRequest struct {
	Name           string           `json:"name" binding:"required"`
	Email          string           `json:"email" binding:"required,email"`
	Password       string           `json:"password" binding:"required"`
	Role           string           `json:"role"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
}

type UpdateProfessionalRequest struct {
	Name           *string          `json:"name"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Password       *string          `json:"password"`
	Role           *string          `json:"role"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
	IsActive       *bool            `json:"isActive"`
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	page := h.paging.from(c)
	items, p, err := h.dir.List(c.Request.Context(), middleware.Actor(c), queryBool(c, "includeInactive"), page)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, items, p)
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	prof, err := h.dir.Get(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, prof)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req CreateProfessionalRequest
	if !bindJSON(c, &req) {
		return
	}

	prof, err := h.dir.Create(c.Request.Context(), middleware.Actor(c), professional.CreateInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, prof)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	var req UpdateProfessionalRequest
	if !bindJSON(c, &req) {
		return
	}

	prof, err := h.dir.Update(c.Request.Context(), middleware.Actor(c), c.Param("id"), professional.UpdateInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		CommissionRate: req.CommissionRate,
		IsActive:       req.IsActive,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, prof)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	if err := h.dir.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id"), queryBool(c, "hard")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
