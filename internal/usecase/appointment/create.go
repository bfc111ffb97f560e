package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProfessionalID string
	ClientID       string
	ServiceID      string
	StartTime      time.Time
	Notes          *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewCreateAppointment(repo domain.Repository, audit audit.Recorder) *CreateAppointment {
	return &CreateAppointment{repo: repo, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if !actor.May(in.ProfessionalID) {
		return nil, errForbidden
	}

	// --------------------------------------------------
	// Participants (active, same tenant)
	// --------------------------------------------------
	prof, client, svc, err := loadParticipants(ctx, uc.repo, actor.TenantID, in.ProfessionalID, in.ClientID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	start := in.StartTime
	end := domain.EndTime(start, svc.Duration)

	ap := &models.Appointment{
		BarbershopID:   actor.TenantID,
		ProfessionalID: prof.ID,
		ClientID:       client.ID,
		ServiceID:      svc.ID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
		Price:          svc.Price,
	}

	// --------------------------------------------------
	// Conflict check + insert under the calendar lock
	// --------------------------------------------------
	err = uc.repo.WithCalendar(ctx, actor.TenantID, prof.ID, func(cal domain.Calendar) error {
		existing, err := cal.Overlapping(ctx, start, end, "")
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return errConflict
		}
		return cal.Create(ctx, ap)
	})
	if err != nil {
		if httperr.IsBusiness(err, domain.ConflictCode) {
			uc.audit.Dispatch(audit.Event{
				BarbershopID:   actor.TenantID,
				ProfessionalID: actor.ProfessionalID,
				Action:         "appointment_conflict_rejected",
				Entity:         "appointment",
				Metadata:       map[string]any{"professionalId": prof.ID, "startTime": start},
			})
		}
		return nil, err
	}

	ap.Professional, ap.Client, ap.Service = prof, client, svc

	uc.audit.Dispatch(audit.Event{
		BarbershopID:   actor.TenantID,
		ProfessionalID: actor.ProfessionalID,
		Action:         "appointment_created",
		Entity:         "appointment",
		EntityID:       ap.ID,
	})

	return ap, nil
}

func loadParticipants(
	ctx context.Context,
	repo domain.Repository,
	tenantID, professionalID, clientID, serviceID string,
) (*models.Professional, *models.Client, *models.Service, error) {

	prof, err := repo.GetProfessional(ctx, tenantID, professionalID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !prof.IsActive {
		return nil, nil, nil, notFound("professional")
	}

	client, err := repo.GetClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !client.IsActive {
		return nil, nil, nil, notFound("client")
	}

	svc, err := repo.GetService(ctx, tenantID, serviceID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !svc.IsActive {
		return nil, nil, nil, notFound("service")
	}

	return prof, client, svc, nil
}
