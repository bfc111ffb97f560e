package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-saas/internal/middleware"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *appointment.CreateAppointment
	update       *appointment.UpdateAppointment
	updateStatus *appointment.UpdateStatus
	remove       *appointment.DeleteAppointment
	get          *appointment.GetAppointment
	list         *appointment.ListAppointments
	paging       Paging
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	update *appointment.UpdateAppointment,
	updateStatus *appointment.UpdateStatus,
	remove *appointment.DeleteAppointment,
	get *appointment.GetAppointment,
	list *appointment.ListAppointments,
	paging Paging,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		update:       update,
		updateStatus: updateStatus,
		remove:       remove,
		get:          get,
		list:         list,
		paging:       paging,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	// ProfessionalID defaults to the caller.
	ProfessionalID string    `json:"professionalId"`
	ClientID       string    `json:"clientId" binding:"required"`
	ServiceID      string    `json:"serviceId" binding:"required"`
	StartTime      time.Time `json:"startTime" binding:"required"`
	Notes          *string   `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ProfessionalID *string    `json:"professionalId"`
	ClientID       *string    `json:"clientId"`
	ServiceID      *string    `json:"serviceId"`
	StartTime      *time.Time `json:"startTime"`
	Notes          *string    `json:"notes"`
}

type UpdateStatusRequest struct {
	Status        string  `json:"status" binding:"required"`
	PaymentMethod *string `json:"paymentMethod"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.Actor(c)
	if req.ProfessionalID == "" {
		req.ProfessionalID = actor.ProfessionalID
	}

	ap, err := h.create.Execute(c.Request.Context(), actor, appointment.CreateAppointmentInput{
		ProfessionalID: req.ProfessionalID,
		ClientID:       req.ClientID,
		ServiceID:      req.ServiceID,
		StartTime:      req.StartTime,
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	from, to, err := queryRange(c, "startDate", "endDate", middleware.Barbershop(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	f := domain.ListFilter{
		Status:         c.Query("status"),
		ProfessionalID: c.Query("professionalId"),
		ClientID:       c.Query("clientId"),
		From:           from,
		To:             to,
	}

	items, p, err := h.list.Execute(c.Request.Context(), middleware.Actor(c), f, h.paging.from(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items, p)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// UPDATE / STATUS / DELETE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), appointment.UpdateAppointmentInput{
		ProfessionalID: req.ProfessionalID,
		ClientID:       req.ClientID,
		ServiceID:      req.ServiceID,
		StartTime:      req.StartTime,
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), appointment.UpdateStatusInput{
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
