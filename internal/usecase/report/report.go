package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

type Period struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

type CategoryTotal struct {
	Type     string          `json:"-"`
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type ProfessionalCommission struct {
	ProfessionalID string          `json:"professionalId"`
	Name           string          `json:"name"`
	Completed      int64           `json:"completedAppointments"`
	Revenue        decimal.Decimal `json:"revenue"`
	Commission     decimal.Decimal `json:"commission"`
}

type Repository interface {
	TotalsByCategory(ctx context.Context, tenantID string, p Period) ([]CategoryTotal, error)
	CommissionsByProfessional(ctx context.Context, tenantID string, p Period, professionalID string) ([]ProfessionalCommission, error)
}

type Section struct {
	Total      decimal.Decimal `json:"total"`
	ByCategory []CategoryTotal `json:"byCategory"`
}

type AppointmentSummary struct {
	Completed   int64           `json:"completed"`
	Revenue     decimal.Decimal `json:"revenue"`
	Commissions decimal.Decimal `json:"commissions"`
}

type Financial struct {
	Period       Period             `json:"period"`
	Income       Section            `json:"income"`
	Expenses     Section            `json:"expenses"`
	Net          decimal.Decimal    `json:"net"`
	Appointments AppointmentSummary `json:"appointments"`
}

type Commissions struct {
	Period        Period                   `json:"period"`
	Professionals []ProfessionalCommission `json:"professionals"`
	Totals        AppointmentSummary       `json:"totals"`
}

type Reports struct {
	repo Repository
}

func New(repo Repository) *Reports {
	return &Reports{repo: repo}
}

func checkPeriod(p Period) error {
	if p.From != nil && p.To != nil && p.From.After(*p.To) {
		return httperr.ErrValidation("invalid_date_range", "from must not be after to")
	}
	return nil
}

func (r *Reports) Financial(ctx context.Context, actor authz.Actor, p Period) (*Financial, error) {
	if err := checkPeriod(p); err != nil {
		return nil, err
	}

	totals, err := r.repo.TotalsByCategory(ctx, actor.TenantID, p)
	if err != nil {
		return nil, err
	}

	out := &Financial{
		Period:   p,
		Income:   Section{Total: decimal.Zero, ByCategory: []CategoryTotal{}},
		Expenses: Section{Total: decimal.Zero, ByCategory: []CategoryTotal{}},
	}
	for _, t := range totals {
		switch t.Type {
		case models.TransactionIncome:
			out.Income.Total = out.Income.Total.Add(t.Total)
			out.Income.ByCategory = append(out.Income.ByCategory, t)
		case models.TransactionExpense:
			out.Expenses.Total = out.Expenses.Total.Add(t.Total)
			out.Expenses.ByCategory = append(out.Expenses.ByCategory, t)
		}
	}
	out.Net = out.Income.Total.Sub(out.Expenses.Total)

	rows, err := r.repo.CommissionsByProfessional(ctx, actor.TenantID, p, "")
	if err != nil {
		return nil, err
	}
	out.Appointments = summarize(rows)

	return out, nil
}

// Commissions narrows to the actor's own row when the scope is restricted.
func (r *Reports) Commissions(ctx context.Context, actor authz.Actor, p Period, professionalID string) (*Commissions, error) {
	if err := checkPeriod(p); err != nil {
		return nil, err
	}
	if actor.Restricted() {
		if professionalID != "" && professionalID != actor.ProfessionalID {
			return nil, httperr.ErrForbidden("forbidden", "Cannot view another professional's commissions")
		}
		professionalID = actor.ProfessionalID
	}

	rows, err := r.repo.CommissionsByProfessional(ctx, actor.TenantID, p, professionalID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []ProfessionalCommission{}
	}

	return &Commissions{Period: p, Professionals: rows, Totals: summarize(rows)}, nil
}

func summarize(rows []ProfessionalCommission) AppointmentSummary {
	s := AppointmentSummary{Revenue: decimal.Zero, Commissions: decimal.Zero}
	for _, row := range rows {
		s.Completed += row.Completed
		s.Revenue = s.Revenue.Add(row.Revenue)
		s.Commissions = s.Commissions.Add(row.Commission)
	}
	return s
}
