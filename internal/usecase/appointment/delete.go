package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
)

// DeleteAppointment removes an appointment in any status.
type DeleteAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteAppointment(repo domain.Repository, audit audit.Recorder) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: audit}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, actor authz.Actor, id string) error {
	ap, err := uc.repo.GetAppointment(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	if !actor.May(ap.ProfessionalID) {
		return errForbidden
	}

	if err := uc.repo.DeleteAppointment(ctx, actor.TenantID, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID:   actor.TenantID,
		ProfessionalID: actor.ProfessionalID,
		Action:         "appointment_deleted",
		Entity:         "appointment",
		EntityID:       id,
		Metadata:       map[string]any{"status": ap.Status},
	})
	return nil
}
