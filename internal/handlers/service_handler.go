package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-saas/internal/middleware"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

type ServiceRepository interface {
	Get(ctx context.Context, tenantID, id string) (*models.Service, error)
	List(ctx context.Context, tenantID string, includeInactive bool, page dto.Page) ([]models.Service, int64, error)
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, s *models.Service) error
	Deactivate(ctx context.Context, tenantID, id string) error
	Delete(ctx context.Context, tenantID, id string) error
}

type ServiceHandler struct {
	repo   ServiceRepository
	audit  audit.Recorder
	paging Paging
}

func NewServiceHandler(repo ServiceRepository, audit audit.Recorder, paging Paging) *ServiceHandler {
	return &ServiceHandler{repo: repo, audit: audit, paging: paging}
}

type CreateServiceRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Duration    int              `json:"duration" binding:"required"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *int             `json:"duration"`
	IsActive    *bool            `json:"isActive"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	page := h.paging.from(c)
	items, total, err := h.repo.List(c.Request.Context(), middleware.Actor(c).TenantID, queryBool(c, "includeInactive"), page)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, items, dto.NewPagination(page, total))
}

func (h *ServiceHandler) Get(c *gin.Context) {
	svc, err := h.repo.Get(c.Request.Context(), middleware.Actor(c).TenantID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.Actor(c)
	svc := &models.Service{
		BarbershopID: actor.TenantID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Price:        *req.Price,
		Duration:     req.Duration,
		IsActive:     true,
	}
	if err := validateService(svc); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Create(c.Request.Context(), svc); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(actor, "service_created", svc.ID)
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.Actor(c)
	svc, err := h.repo.Get(c.Request.Context(), actor.TenantID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if err := validateService(svc); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Update(c.Request.Context(), svc); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(actor, "service_updated", svc.ID)
	httpresp.OK(c, svc)
}

// Delete deactivates by default; ?hard=true removes the row, which fails
// with 409 while appointments still reference it.
func (h *ServiceHandler) Delete(c *gin.Context) {
	actor := middleware.Actor(c)
	id := c.Param("id")

	var err error
	if queryBool(c, "hard") {
		err = h.repo.Delete(c.Request.Context(), actor.TenantID, id)
	} else {
		err = h.repo.Deactivate(c.Request.Context(), actor.TenantID, id)
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(actor, "service_deleted", id)
	httpresp.NoContent(c)
}

func (h *ServiceHandler) record(actor authz.Actor, action, id string) {
	h.audit.Dispatch(audit.Event{
		BarbershopID:   actor.TenantID,
		ProfessionalID: actor.ProfessionalID,
		Action:         action,
		Entity:         "service",
		EntityID:       id,
	})
}

func validateService(s *models.Service) error {
	if s.Name == "" {
		return httperr.ErrValidation("invalid_name", "Name is required")
	}
	if s.Price.IsNegative() {
		return httperr.ErrValidation("invalid_price", "Price must not be negative")
	}
	if s.Duration <= 0 {
		return httperr.ErrValidation("invalid_duration", "Duration must be a positive number of minutes")
	}
	return nil
}
