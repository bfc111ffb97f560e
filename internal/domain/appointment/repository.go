package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

// Calendar is one professional's schedule, held exclusively for the
// duration of Repository.WithCalendar.
type Calendar interface {
	// Overlapping lists non-cancelled appointments intersecting [start, end),
	// ignoring excludeID.
	Overlapping(ctx context.Context, start, end time.Time, excludeID string) ([]models.Appointment, error)

	Create(ctx context.Context, ap *models.Appointment) error

	// Save persists a reschedule. It fails with InvalidTransition when the
	// stored appointment is no longer SCHEDULED.
	Save(ctx context.Context, ap *models.Appointment) error
}

// Transition is a conditional status change from SCHEDULED.
type Transition struct {
	TenantID      string
	AppointmentID string
	To            Status
	At            time.Time

	CommissionValue *decimal.Decimal

	// Income is written in the same unit of work as the status change.
	Income *models.Transaction
}

type ListFilter struct {
	Status         string
	ProfessionalID string
	ClientID       string
	From           *time.Time
	To             *time.Time
}

type Repository interface {
	// -------- Participants --------
	GetProfessional(ctx context.Context, tenantID, id string) (*models.Professional, error)
	GetClient(ctx context.Context, tenantID, id string) (*models.Client, error)
	GetService(ctx context.Context, tenantID, id string) (*models.Service, error)

	// -------- Appointment (read) --------
	GetAppointment(ctx context.Context, tenantID, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, tenantID string, f ListFilter, page dto.Page) ([]models.Appointment, int64, error)

	// -------- Appointment (write) --------
	WithCalendar(ctx context.Context, tenantID, professionalID string, fn func(Calendar) error) error
	ApplyTransition(ctx context.Context, t Transition) error
	DeleteAppointment(ctx context.Context, tenantID, id string) error
}
