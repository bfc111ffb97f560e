package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

// UpdateAppointmentInput holds optional changes; nil fields are kept.
type UpdateAppointmentInput struct {
	ProfessionalID *string
	ClientID       *string
	ServiceID      *string
	StartTime      *time.Time
	Notes          *string
}

// UpdateAppointment reschedules or reassigns a SCHEDULED appointment.
type UpdateAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateAppointment(repo domain.Repository, audit audit.Recorder) *UpdateAppointment {
	return &UpdateAppointment{repo: repo, audit: audit}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	id string,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !actor.May(ap.ProfessionalID) {
		return nil, errForbidden
	}
	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	profID, clientID, serviceID := ap.ProfessionalID, ap.ClientID, ap.ServiceID
	if in.ProfessionalID != nil {
		profID = *in.ProfessionalID
	}
	if in.ClientID != nil {
		clientID = *in.ClientID
	}
	if in.ServiceID != nil {
		serviceID = *in.ServiceID
	}
	if !actor.May(profID) {
		return nil, errForbidden
	}

	prof, client, svc, err := loadParticipants(ctx, uc.repo, actor.TenantID, profID, clientID, serviceID)
	if err != nil {
		return nil, err
	}

	start := ap.StartTime
	if in.StartTime != nil {
		start = *in.StartTime
	}

	ap.ProfessionalID = prof.ID
	ap.ClientID = client.ID
	if ap.ServiceID != svc.ID {
		ap.Price = svc.Price
	}
	ap.ServiceID = svc.ID
	ap.StartTime = start
	ap.EndTime = domain.EndTime(start, svc.Duration)
	if in.Notes != nil {
		ap.Notes = in.Notes
	}
	ap.Professional, ap.Client, ap.Service = nil, nil, nil

	err = uc.repo.WithCalendar(ctx, actor.TenantID, prof.ID, func(cal domain.Calendar) error {
		existing, err := cal.Overlapping(ctx, ap.StartTime, ap.EndTime, ap.ID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return errConflict
		}
		return cal.Save(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	ap.Professional, ap.Client, ap.Service = prof, client, svc

	uc.audit.Dispatch(audit.Event{
		BarbershopID:   actor.TenantID,
		ProfessionalID: actor.ProfessionalID,
		Action:         "appointment_updated",
		Entity:         "appointment",
		EntityID:       ap.ID,
	})

	return ap, nil
}
