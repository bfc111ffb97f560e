package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-saas/internal/middleware"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

type ClientRepository interface {
	Get(ctx context.Context, tenantID, id string) (*models.Client, error)
	List(ctx context.Context, tenantID string, includeInactive bool, search string, page dto.Page) ([]models.Client, int64, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	Deactivate(ctx context.Context, tenantID, id string) error
	Delete(ctx context.Context, tenantID, id string) error
}

type ClientHandler struct {
	repo   ClientRepository
	audit  audit.Recorder
	paging Paging
}

func NewClientHandler(repo ClientRepository, audit audit.Recorder, paging Paging) *ClientHandler {
	return &ClientHandler{repo: repo, audit: audit, paging: paging}
}

type CreateClientRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone string  `json:"phone" binding:"required"`
	Email *string `json:"email" binding:"omitempty,email"`
	Notes *string `json:"notes"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"isActive"`
}

// ======================================================
// LIST CLIENTS
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)
	page := h.paging.from(c)

	search := strings.TrimSpace(c.Query("search"))
	items, total, err := h.repo.List(c.Request.Context(), actor.TenantID, queryBool(c, "includeInactive"), search, page)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, items, dto.NewPagination(page, total))
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.repo.Get(c.Request.Context(), middleware.Actor(c).TenantID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.Actor(c)
	client := &models.Client{
		BarbershopID: actor.TenantID,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        req.Email,
		Notes:        req.Notes,
		IsActive:     true,
	}
	if err := validateClient(client); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Create(c.Request.Context(), client); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(actor, "client_created", client.ID)
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.Actor(c)
	client, err := h.repo.Get(c.Request.Context(), actor.TenantID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	if err := validateClient(client); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Update(c.Request.Context(), client); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(actor, "client_updated", client.ID)
	httpresp.OK(c, client)
}

// Delete deactivates by default; ?hard=true removes the row.
func (h *ClientHandler) Delete(c *gin.Context) {
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

	h.record(actor, "client_deleted", id)
	httpresp.NoContent(c)
}

func (h *ClientHandler) record(actor authz.Actor, action, id string) {
	h.audit.Dispatch(audit.Event{
		BarbershopID:   actor.TenantID,
		ProfessionalID: actor.ProfessionalID,
		Action:         action,
		Entity:         "client",
		EntityID:       id,
	})
}

func validateClient(c *models.Client) error {
	if c.Name == "" {
		return httperr.ErrValidation("invalid_name", "Name is required")
	}
	if c.Phone == "" {
		return httperr.ErrValidation("invalid_phone", "Phone is required")
	}
	return nil
}
