package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-saas/internal/middleware"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
	"github.com/BruksfildServices01/barbershop-saas/internal/timezone"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/ledger"
)

type TransactionHandler struct {
	ledger *ledger.Ledger
	paging Paging
}

func NewTransactionHandler(l *ledger.Ledger, paging Paging) *TransactionHandler {
	return &TransactionHandler{ledger: l, paging: paging}
}

type CreateTransactionRequest struct {
	Type          string           `json:"type" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	Category      string           `json:"category" binding:"required"`
	Description   *string          `json:"description"`
	Date          *string          `json:"date"`
	PaymentMethod *string          `json:"paymentMethod"`
}

type UpdateTransactionRequest struct {
	Type          *string          `json:"type"`
	Amount        *decimal.Decimal `json:"amount"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	Date          *string          `json:"date"`
	PaymentMethod *string          `json:"paymentMethod"`
}

// parseDate accepts RFC3339 or a plain date in the barbershop's timezone.
func parseDate(raw *string, shop *models.Barbershop) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := timezone.ParseBound(*raw, locationFromShop(shop), false)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD or RFC3339")
	}
	return &t, nil
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	date, err := parseDate(req.Date, middleware.Barbershop(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	tx, err := h.ledger.Create(c.Request.Context(), middleware.Actor(c), ledger.CreateInput{
		Type:          req.Type,
		Amount:        *req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		Date:          date,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, tx)
}

func (h *TransactionHandler) List(c *gin.Context) {
	from, to, err := queryRange(c, "startDate", "endDate", middleware.Barbershop(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	f := ledger.Filter{
		Type:           c.Query("type"),
		Category:       c.Query("category"),
		ProfessionalID: c.Query("professionalId"),
		From:           from,
		To:             to,
	}

	items, p, err := h.ledger.List(c.Request.Context(), middleware.Actor(c), f, h.paging.from(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, items, p)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	tx, err := h.ledger.Get(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, tx)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var req UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	date, err := parseDate(req.Date, middleware.Barbershop(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	tx, err := h.ledger.Update(c.Request.Context(), middleware.Actor(c), c.Param("id"), ledger.UpdateInput{
		Type:          req.Type,
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		Date:          date,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, tx)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.ledger.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
