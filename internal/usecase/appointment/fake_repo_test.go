package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

// memRepo is an in-memory domain.Repository with one lock per professional.
type memRepo struct {
	mu        sync.Mutex
	calendars map[string]*sync.Mutex

	professionals map[string]models.Professional
	clients       map[string]models.Client
	services      map[string]models.Service
	appointments  map[string]models.Appointment
	transactions  []models.Transaction
}

func newMemRepo() *memRepo {
	return &memRepo{
		calendars:     map[string]*sync.Mutex{},
		professionals: map[string]models.Professional{},
		clients:       map[string]models.Client{},
		services:      map[string]models.Service{},
		appointments:  map[string]models.Appointment{},
	}
}

func (r *memRepo) addProfessional(tenantID string, rate int64, role string) models.Professional {
	p := models.Professional{ID: uuid.NewString(), BarbershopID: tenantID, Name: "Pro", Role: role,
		CommissionRate: decimal.NewFromInt(rate), IsActive: true}
	r.professionals[p.ID] = p
	return p
}

func (r *memRepo) addClient(tenantID string) models.Client {
	c := models.Client{ID: uuid.NewString(), BarbershopID: tenantID, Name: "Client", Phone: "11999990000", IsActive: true}
	r.clients[c.ID] = c
	return c
}

func (r *memRepo) addService(tenantID string, price int64, duration int) models.Service {
	s := models.Service{ID: uuid.NewString(), BarbershopID: tenantID, Name: "Corte",
		Price: decimal.NewFromInt(price), Duration: duration, IsActive: true}
	r.services[s.ID] = s
	return s
}

func (r *memRepo) GetProfessional(_ context.Context, tenantID, id string) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.professionals[id]
	if !ok || p.BarbershopID != tenantID {
		return nil, notFound("professional")
	}
	return &p, nil
}

func (r *memRepo) GetClient(_ context.Context, tenantID, id string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok || c.BarbershopID != tenantID {
		return nil, notFound("client")
	}
	return &c, nil
}

func (r *memRepo) GetService(_ context.Context, tenantID, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok || s.BarbershopID != tenantID {
		return nil, notFound("service")
	}
	return &s, nil
}

func (r *memRepo) GetAppointment(_ context.Context, tenantID, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok || ap.BarbershopID != tenantID {
		return nil, notFound("appointment")
	}
	svc := r.services[ap.ServiceID]
	ap.Service = &svc
	return &ap, nil
}

func (r *memRepo) ListAppointments(_ context.Context, tenantID string, f domain.ListFilter, page dto.Page) ([]models.Appointment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarbershopID != tenantID {
			continue
		}
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		if f.ProfessionalID != "" && ap.ProfessionalID != f.ProfessionalID {
			continue
		}
		if f.ClientID != "" && ap.ClientID != f.ClientID {
			continue
		}
		if f.From != nil && ap.StartTime.Before(*f.From) {
			continue
		}
		if f.To != nil && ap.StartTime.After(*f.To) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })

	total := int64(len(out))
	lo := page.Offset()
	if lo > len(out) {
		lo = len(out)
	}
	hi := lo + page.Limit
	if hi > len(out) {
		hi = len(out)
	}
	return out[lo:hi], total, nil
}

func (r *memRepo) WithCalendar(ctx context.Context, tenantID, professionalID string, fn func(domain.Calendar) error) error {
	r.mu.Lock()
	lock, ok := r.calendars[professionalID]
	if !ok {
		lock = &sync.Mutex{}
		r.calendars[professionalID] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn(&memCalendar{repo: r, tenantID: tenantID, professionalID: professionalID})
}

func (r *memRepo) ApplyTransition(_ context.Context, t domain.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[t.AppointmentID]
	if !ok || ap.BarbershopID != t.TenantID {
		return notFound("appointment")
	}
	if err := domain.CanTransition(domain.Status(ap.Status), t.To); err != nil {
		return err
	}

	ap.Status = string(t.To)
	at := t.At
	if t.To == domain.StatusCompleted {
		ap.CommissionValue = t.CommissionValue
		ap.CompletedAt = &at
	} else {
		ap.CancelledAt = &at
	}
	r.appointments[ap.ID] = ap

	if t.Income != nil {
		income := *t.Income
		income.ID = uuid.NewString()
		r.transactions = append(r.transactions, income)
	}
	return nil
}

func (r *memRepo) DeleteAppointment(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok || ap.BarbershopID != tenantID {
		return notFound("appointment")
	}
	delete(r.appointments, id)
	return nil
}

type memCalendar struct {
	repo           *memRepo
	tenantID       string
	professionalID string
}

func (c *memCalendar) Overlapping(_ context.Context, start, end time.Time, excludeID string) ([]models.Appointment, error) {
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()

	var out []models.Appointment
	for _, ap := range c.repo.appointments {
		if ap.BarbershopID != c.tenantID || ap.ProfessionalID != c.professionalID || ap.ID == excludeID {
			continue
		}
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (c *memCalendar) Create(_ context.Context, ap *models.Appointment) error {
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()
	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	c.repo.appointments[ap.ID] = *ap
	return nil
}

func (c *memCalendar) Save(_ context.Context, ap *models.Appointment) error {
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()
	stored, ok := c.repo.appointments[ap.ID]
	if !ok {
		return notFound("appointment")
	}
	if stored.Status != string(domain.StatusScheduled) {
		return httperr.ErrInvalidTransition("not_reschedulable", "")
	}
	c.repo.appointments[ap.ID] = *ap
	return nil
}
