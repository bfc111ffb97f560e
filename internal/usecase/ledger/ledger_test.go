package ledger

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

type memRepo struct {
	mu  sync.Mutex
	txs map[string]models.Transaction
}

func (r *memRepo) Create(_ context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx.ID = uuid.NewString()
	r.txs[tx.ID] = *tx
	return nil
}

func (r *memRepo) Get(_ context.Context, tenantID, id string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok || tx.BarbershopID != tenantID {
		return nil, httperr.ErrNotFound("transaction_not_found", "")
	}
	return &tx, nil
}

func (r *memRepo) List(_ context.Context, tenantID string, f Filter, page dto.Page) ([]models.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Transaction
	for _, tx := range r.txs {
		switch {
		case tx.BarbershopID != tenantID,
			f.Type != "" && tx.Type != f.Type,
			f.Category != "" && tx.Category != f.Category,
			f.ProfessionalID != "" && (tx.ProfessionalID == nil || *tx.ProfessionalID != f.ProfessionalID),
			f.From != nil && tx.Date.Before(*f.From),
			f.To != nil && tx.Date.After(*f.To):
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
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

func (r *memRepo) Update(_ context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.ID] = *tx
	return nil
}

func (r *memRepo) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.txs, id)
	return nil
}

var (
	admin  = authz.Actor{TenantID: "t1", ProfessionalID: "admin", Role: models.RoleAdmin, Scope: authz.All}
	barber = authz.Actor{TenantID: "t1", ProfessionalID: "barber", Role: models.RoleBarber, Scope: authz.Own}
	day    = func(d int) *time.Time { t := time.Date(2025, 3, d, 12, 0, 0, 0, time.UTC); return &t }
)

func newLedger() (*Ledger, *memRepo) {
	repo := &memRepo{txs: map[string]models.Transaction{}}
	return New(repo, audit.Discard), repo
}

func TestCreate_Validation(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()

	cases := []CreateInput{
		{Type: "GIFT", Amount: decimal.NewFromInt(10), Category: "x"},
		{Type: "INCOME", Amount: decimal.Zero, Category: "x"},
		{Type: "EXPENSE", Amount: decimal.NewFromInt(-5), Category: "x"},
		{Type: "EXPENSE", Amount: decimal.NewFromInt(5), Category: "  "},
		{Type: "EXPENSE", Amount: decimal.NewFromInt(5), Category: "x", PaymentMethod: strPtr("BITCOIN")},
	}
	for _, in := range cases {
		_, err := l.Create(ctx, admin, in)
		assert.True(t, httperr.IsKind(err, httperr.KindValidation), "%+v", in)
	}

	tx, err := l.Create(ctx, admin, CreateInput{Type: "EXPENSE", Amount: decimal.RequireFromString("35.50"), Category: "Supplies", PaymentMethod: strPtr("PIX")})
	require.NoError(t, err)
	assert.Equal(t, "admin", *tx.ProfessionalID)
	assert.False(t, tx.Date.IsZero())
}

func TestList_FiltersAreConjunctiveAndInclusive(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()

	seed := []CreateInput{
		{Type: "INCOME", Amount: decimal.NewFromInt(100), Category: "Corte", Date: day(1)},
		{Type: "INCOME", Amount: decimal.NewFromInt(50), Category: "Barba", Date: day(2)},
		{Type: "EXPENSE", Amount: decimal.NewFromInt(30), Category: "Corte", Date: day(3)},
		{Type: "INCOME", Amount: decimal.NewFromInt(70), Category: "Corte", Date: day(5)},
	}
	for _, in := range seed {
		_, err := l.Create(ctx, admin, in)
		require.NoError(t, err)
	}
	page := dto.Page{Page: 1, Limit: 10}

	items, p, err := l.List(ctx, admin, Filter{Type: "INCOME", Category: "Corte"}, page)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 2, p.Total)

	items, _, err = l.List(ctx, admin, Filter{From: day(1), To: day(3)}, page)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	items, _, err = l.List(ctx, admin, Filter{Type: "INCOME", From: day(2), To: day(5)}, page)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, _, err = l.List(ctx, admin, Filter{From: day(5), To: day(1)}, page)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	_, _, err = l.List(ctx, admin, Filter{Type: "other"}, page)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	items, p, err = l.List(ctx, admin, Filter{}, dto.Page{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, dto.Pagination{Page: 2, Limit: 1, Total: 4, TotalPages: 4}, p)
}

func TestBarberSeesOnlyOwnEntries(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()

	adminTx, err := l.Create(ctx, admin, CreateInput{Type: "EXPENSE", Amount: decimal.NewFromInt(10), Category: "Rent"})
	require.NoError(t, err)
	_, err = l.Create(ctx, barber, CreateInput{Type: "INCOME", Amount: decimal.NewFromInt(20), Category: "Tip"})
	require.NoError(t, err)

	items, _, err := l.List(ctx, barber, Filter{}, dto.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tip", items[0].Category)

	_, err = l.Get(ctx, barber, adminTx.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestUpdateAndDelete(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()

	tx, err := l.Create(ctx, admin, CreateInput{Type: "EXPENSE", Amount: decimal.NewFromInt(10), Category: "Rent"})
	require.NoError(t, err)

	amount := decimal.NewFromInt(15)
	updated, err := l.Update(ctx, admin, tx.ID, UpdateInput{Amount: &amount, Category: strPtr("Utilities")})
	require.NoError(t, err)
	assert.True(t, amount.Equal(updated.Amount))
	assert.Equal(t, "Utilities", updated.Category)

	neg := decimal.NewFromInt(-1)
	_, err = l.Update(ctx, admin, tx.ID, UpdateInput{Amount: &neg})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	require.NoError(t, l.Delete(ctx, admin, tx.ID))
	_, err = l.Get(ctx, admin, tx.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	other := authz.Actor{TenantID: "t2", ProfessionalID: "x", Scope: authz.All}
	err = l.Delete(ctx, other, tx.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func strPtr(s string) *string { return &s }
