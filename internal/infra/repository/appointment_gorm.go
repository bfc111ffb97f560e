package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Participants
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessional(ctx context.Context, tenantID, id string) (*models.Professional, error) {
	return scoped[models.Professional]{db: r.db, entity: "professional"}.get(ctx, tenantID, id)
}

func (r *AppointmentGormRepository) GetClient(ctx context.Context, tenantID, id string) (*models.Client, error) {
	return scoped[models.Client]{db: r.db, entity: "client"}.get(ctx, tenantID, id)
}

func (r *AppointmentGormRepository) GetService(ctx context.Context, tenantID, id string) (*models.Service, error) {
	return scoped[models.Service]{db: r.db, entity: "service"}.get(ctx, tenantID, id)
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Professional").
		Preload("Client").
		Preload("Service").
		Where("id = ? AND barbershop_id = ?", id, tenantID).
		First(&ap).Error; err != nil {
		return nil, translate(err, "appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	tenantID string,
	f domain.ListFilter,
	page dto.Page,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barbershop_id = ?", tenantID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ProfessionalID != "" {
		q = q.Where("professional_id = ?", f.ProfessionalID)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.From != nil {
		q = q.Where("start_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := q.
		Preload("Professional").
		Preload("Client").
		Preload("Service").
		Order("start_time ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

// WithCalendar runs fn in a transaction holding a row lock on the
// professional, which serializes bookings per professional. The exclusion
// constraint still backs this up across instances.
func (r *AppointmentGormRepository) WithCalendar(
	ctx context.Context,
	tenantID, professionalID string,
	fn func(domain.Calendar) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prof models.Professional
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ? AND barbershop_id = ?", professionalID, tenantID).
			First(&prof).Error; err != nil {
			return translate(err, "professional")
		}

		return fn(&gormCalendar{tx: tx, tenantID: tenantID, professionalID: professionalID})
	})
}

func (r *AppointmentGormRepository) ApplyTransition(ctx context.Context, t domain.Transition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		changes := map[string]any{"status": string(t.To)}
		switch t.To {
		case domain.StatusCompleted:
			changes["completed_at"] = t.At
			changes["commission_value"] = t.CommissionValue
		case domain.StatusCancelled:
			changes["cancelled_at"] = t.At
		}

		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND barbershop_id = ? AND status = ?", t.AppointmentID, t.TenantID, string(domain.StatusScheduled)).
			Updates(changes)
		if res.Error != nil {
			return translate(res.Error, "appointment")
		}
		if res.RowsAffected == 0 {
			return staleOrMissing(tx, t.TenantID, t.AppointmentID)
		}

		if t.Income != nil {
			if err := tx.Create(t.Income).Error; err != nil {
				return translate(err, "transaction")
			}
		}
		return nil
	})
}

func (r *AppointmentGormRepository) DeleteAppointment(ctx context.Context, tenantID, id string) error {
	return scoped[models.Appointment]{db: r.db, entity: "appointment"}.delete(ctx, tenantID, id)
}

// staleOrMissing explains a conditional update that matched no row.
func staleOrMissing(tx *gorm.DB, tenantID, id string) error {
	var count int64
	if err := tx.Model(&models.Appointment{}).
		Where("id = ? AND barbershop_id = ?", id, tenantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound("appointment")
	}
	return httperr.ErrInvalidTransition("invalid_transition", "Appointment is no longer scheduled")
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

type gormCalendar struct {
	tx             *gorm.DB
	tenantID       string
	professionalID string
}

func (c *gormCalendar) Overlapping(ctx context.Context, start, end time.Time, excludeID string) ([]models.Appointment, error) {
	q := c.tx.WithContext(ctx).
		Where(
			"barbershop_id = ? AND professional_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			c.tenantID,
			c.professionalID,
			string(domain.StatusCancelled),
			end,
			start,
		)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *gormCalendar) Create(ctx context.Context, ap *models.Appointment) error {
	return translate(c.tx.WithContext(ctx).Omit(clause.Associations).Create(ap).Error, "appointment")
}

func (c *gormCalendar) Save(ctx context.Context, ap *models.Appointment) error {
	res := c.tx.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND barbershop_id = ? AND status = ?", ap.ID, c.tenantID, string(domain.StatusScheduled)).
		Updates(map[string]any{
			"professional_id": ap.ProfessionalID,
			"client_id":       ap.ClientID,
			"service_id":      ap.ServiceID,
			"start_time":      ap.StartTime,
			"end_time":        ap.EndTime,
			"price":           ap.Price,
			"notes":           ap.Notes,
		})
	if res.Error != nil {
		return translate(res.Error, "appointment")
	}
	if res.RowsAffected == 0 {
		return staleOrMissing(c.tx, c.tenantID, ap.ID)
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
