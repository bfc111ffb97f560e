package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
)

type stubRepo struct {
	totals      []CategoryTotal
	commissions []ProfessionalCommission
	gotProf     string
}

func (s *stubRepo) TotalsByCategory(context.Context, string, Period) ([]CategoryTotal, error) {
	return s.totals, nil
}

func (s *stubRepo) CommissionsByProfessional(_ context.Context, _ string, _ Period, professionalID string) ([]ProfessionalCommission, error) {
	s.gotProf = professionalID
	var out []ProfessionalCommission
	for _, c := range s.commissions {
		if professionalID == "" || c.ProfessionalID == professionalID {
			out = append(out, c)
		}
	}
	return out, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStub() *stubRepo {
	return &stubRepo{
		totals: []CategoryTotal{
			{Type: "INCOME", Category: "Corte", Total: dec("240")},
			{Type: "INCOME", Category: "Barba", Total: dec("60")},
			{Type: "EXPENSE", Category: "Aluguel", Total: dec("100.50")},
		},
		commissions: []ProfessionalCommission{
			{ProfessionalID: "p1", Name: "Ana", Completed: 2, Revenue: dec("240"), Commission: dec("96")},
			{ProfessionalID: "p2", Name: "Bia", Completed: 1, Revenue: dec("60"), Commission: dec("18")},
		},
	}
}

var admin = authz.Actor{TenantID: "t1", ProfessionalID: "p0", Scope: authz.All}

func TestFinancial(t *testing.T) {
	r := New(newStub())

	f, err := r.Financial(context.Background(), admin, Period{})
	require.NoError(t, err)

	assert.Equal(t, "300", f.Income.Total.String())
	assert.Len(t, f.Income.ByCategory, 2)
	assert.Equal(t, "100.5", f.Expenses.Total.String())
	assert.Equal(t, "199.5", f.Net.String())
	assert.EqualValues(t, 3, f.Appointments.Completed)
	assert.Equal(t, "114", f.Appointments.Commissions.String())
}

func TestFinancial_InvalidPeriod(t *testing.T) {
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err := New(newStub()).Financial(context.Background(), admin, Period{From: &from, To: &to})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestCommissions_BarberSeesOwnOnly(t *testing.T) {
	stub := newStub()
	r := New(stub)
	barber := authz.Actor{TenantID: "t1", ProfessionalID: "p2", Scope: authz.Own}

	c, err := r.Commissions(context.Background(), barber, Period{}, "")
	require.NoError(t, err)
	assert.Equal(t, "p2", stub.gotProf)
	require.Len(t, c.Professionals, 1)
	assert.Equal(t, "18", c.Totals.Commissions.String())

	_, err = r.Commissions(context.Background(), barber, Period{}, "p1")
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	c, err = r.Commissions(context.Background(), admin, Period{}, "")
	require.NoError(t, err)
	assert.Len(t, c.Professionals, 2)
}
