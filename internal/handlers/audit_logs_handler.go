package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/barbershop-saas/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-saas/internal/middleware"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogLister interface {
	List(ctx context.Context, tenantID string, f infraRepo.AuditFilter, page dto.Page) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	repo   AuditLogLister
	paging Paging
}

func NewAuditLogsHandler(repo AuditLogLister, paging Paging) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo, paging: paging}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	from, to, err := queryRange(c, "from", "to", middleware.Barbershop(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	f := infraRepo.AuditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
	}
	page := h.paging.from(c)

	logs, total, err := h.repo.List(c.Request.Context(), middleware.Actor(c).TenantID, f, page)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, logs, dto.NewPagination(page, total))
}
