package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-saas/internal/middleware"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/report"
)

type ReportHandler struct {
	reports *report.Reports
}

func NewReportHandler(reports *report.Reports) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func period(c *gin.Context) (report.Period, error) {
	from, to, err := queryRange(c, "from", "to", middleware.Barbershop(c))
	if err != nil {
		return report.Period{}, err
	}
	return report.Period{From: from, To: to}, nil
}

func (h *ReportHandler) Financial(c *gin.Context) {
	p, err := period(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.reports.Financial(c.Request.Context(), middleware.Actor(c), p)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ReportHandler) Commissions(c *gin.Context) {
	p, err := period(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.reports.Commissions(c.Request.Context(), middleware.Actor(c), p, c.Query("professionalId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}
