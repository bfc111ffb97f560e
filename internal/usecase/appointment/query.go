package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, actor authz.Actor, id string) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointment(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !actor.May(ap.ProfessionalID) {
		return nil, errForbidden
	}
	return ap, nil
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute narrows the listing to the actor's own appointments when the
// actor's scope is restricted.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor authz.Actor,
	f domain.ListFilter,
	page dto.Page,
) ([]models.Appointment, dto.Pagination, error) {

	if f.Status != "" {
		if _, err := domain.ParseStatus(f.Status); err != nil {
			return nil, dto.Pagination{}, err
		}
	}
	if actor.Restricted() {
		if f.ProfessionalID != "" && f.ProfessionalID != actor.ProfessionalID {
			return []models.Appointment{}, dto.NewPagination(page, 0), nil
		}
		f.ProfessionalID = actor.ProfessionalID
	}

	items, total, err := uc.repo.ListAppointments(ctx, actor.TenantID, f, page)
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	return items, dto.NewPagination(page, total), nil
}
