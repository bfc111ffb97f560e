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

type UpdateStatusInput struct {
	Status string

	// PaymentMethod is recorded on the income entry when completing.
	PaymentMethod *string
}

// UpdateStatus completes or cancels a SCHEDULED appointment. Completion sets
// the commission and books the income in the ledger exactly once.
type UpdateStatus struct {
	repo  domain.Repository
	audit audit.Recorder
	now   func() time.Time
}

func NewUpdateStatus(repo domain.Repository, audit audit.Recorder) *UpdateStatus {
	return &UpdateStatus{repo: repo, audit: audit, now: time.Now}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actor authz.Actor,
	id string,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if in.PaymentMethod != nil && !models.IsPaymentMethod(*in.PaymentMethod) {
		return nil, httperr.ErrValidation("invalid_payment_method", "Payment method must be CASH, CREDIT_CARD, DEBIT_CARD or PIX")
	}

	ap, err := uc.repo.GetAppointment(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !actor.May(ap.ProfessionalID) {
		return nil, errForbidden
	}
	if err := domain.CanTransition(domain.Status(ap.Status), to); err != nil {
		return nil, err
	}

	now := uc.now()
	t := domain.Transition{
		TenantID:      actor.TenantID,
		AppointmentID: ap.ID,
		To:            to,
		At:            now,
	}

	if to == domain.StatusCompleted {
		prof, err := uc.repo.GetProfessional(ctx, actor.TenantID, ap.ProfessionalID)
		if err != nil {
			return nil, err
		}

		commission := domain.Commission(ap.Price, prof.CommissionRate)
		t.CommissionValue = &commission

		category := "Service"
		if ap.Service != nil {
			category = ap.Service.Name
		}
		apID, profID := ap.ID, ap.ProfessionalID
		t.Income = &models.Transaction{
			BarbershopID:         actor.TenantID,
			Type:                 models.TransactionIncome,
			Amount:               ap.Price,
			Category:             category,
			Date:                 now,
			PaymentMethod:        in.PaymentMethod,
			ProfessionalID:       &profID,
			RelatedAppointmentID: &apID,
		}
	}

	if err := uc.repo.ApplyTransition(ctx, t); err != nil {
		return nil, err
	}

	ap.Status = string(to)
	switch to {
	case domain.StatusCompleted:
		ap.CommissionValue = t.CommissionValue
		ap.CompletedAt = &now
	case domain.StatusCancelled:
		ap.CancelledAt = &now
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID:   actor.TenantID,
		ProfessionalID: actor.ProfessionalID,
		Action:         "appointment_" + statusVerb(to),
		Entity:         "appointment",
		EntityID:       ap.ID,
	})

	return ap, nil
}

func statusVerb(s domain.Status) string {
	if s == domain.StatusCompleted {
		return "completed"
	}
	return "cancelled"
}
