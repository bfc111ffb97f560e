package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

const (
	tenantA = "tenant-a"
	tenantB = "tenant-b"
)

var nine = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

type env struct {
	repo   *memRepo
	create *CreateAppointment
	update *UpdateAppointment
	status *UpdateStatus
	del    *DeleteAppointment
	get    *GetAppointment
	list   *ListAppointments

	admin  authz.Actor
	pro    models.Professional
	client models.Client
	svc    models.Service
}

func newEnv() *env {
	repo := newMemRepo()
	pro := repo.addProfessional(tenantA, 40, models.RoleBarber)
	e := &env{
		repo:   repo,
		create: NewCreateAppointment(repo, audit.Discard),
		update: NewUpdateAppointment(repo, audit.Discard),
		status: NewUpdateStatus(repo, audit.Discard),
		del:    NewDeleteAppointment(repo, audit.Discard),
		get:    NewGetAppointment(repo),
		list:   NewListAppointments(repo),
		admin:  authz.Actor{TenantID: tenantA, ProfessionalID: "admin", Role: models.RoleAdmin, Scope: authz.All},
		pro:    pro,
		client: repo.addClient(tenantA),
		svc:    repo.addService(tenantA, 120, 45),
	}
	return e
}

func (e *env) input(start time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		ProfessionalID: e.pro.ID,
		ClientID:       e.client.ID,
		ServiceID:      e.svc.ID,
		StartTime:      start,
	}
}

func (e *env) barber() authz.Actor {
	return authz.Actor{TenantID: tenantA, ProfessionalID: e.pro.ID, Role: models.RoleBarber, Scope: authz.Own}
}

func requireKind(t *testing.T, err error, kind httperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, httperr.KindOf(err), "got %v", err)
}

func TestCreate_DerivesEndTimeAndSnapshotsPrice(t *testing.T) {
	e := newEnv()

	ap, err := e.create.Execute(context.Background(), e.admin, e.input(nine))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, nine.Add(45*time.Minute), ap.EndTime)
	assert.True(t, decimal.NewFromInt(120).Equal(ap.Price))
	assert.Nil(t, ap.CommissionValue)
}

func TestCreate_OverlapIsConflictButTouchingIsNot(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)

	_, err = e.create.Execute(ctx, e.admin, e.input(nine.Add(30*time.Minute)))
	requireKind(t, err, httperr.KindConflict)

	_, err = e.create.Execute(ctx, e.admin, e.input(nine.Add(-15*time.Minute)))
	requireKind(t, err, httperr.KindConflict)

	_, err = e.create.Execute(ctx, e.admin, e.input(nine.Add(45*time.Minute)))
	require.NoError(t, err)

	_, err = e.create.Execute(ctx, e.admin, e.input(nine.Add(-45*time.Minute)))
	require.NoError(t, err)
}

func TestCreate_OtherProfessionalIsIndependent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	other := e.repo.addProfessional(tenantA, 10, models.RoleBarber)

	_, err := e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)

	in := e.input(nine)
	in.ProfessionalID = other.ID
	_, err = e.create.Execute(ctx, e.admin, in)
	require.NoError(t, err)
}

func TestCreate_MissingOrInactiveParticipants(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	in := e.input(nine)
	in.ServiceID = "missing"
	_, err := e.create.Execute(ctx, e.admin, in)
	requireKind(t, err, httperr.KindNotFound)

	c := e.repo.addClient(tenantA)
	c.IsActive = false
	e.repo.clients[c.ID] = c
	in = e.input(nine)
	in.ClientID = c.ID
	_, err = e.create.Execute(ctx, e.admin, in)
	requireKind(t, err, httperr.KindNotFound)

	foreign := e.repo.addService(tenantB, 50, 30)
	in = e.input(nine)
	in.ServiceID = foreign.ID
	_, err = e.create.Execute(ctx, e.admin, in)
	requireKind(t, err, httperr.KindNotFound)
}

func TestCreate_ConcurrentOverlapsHaveOneWinner(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := e.create.Execute(ctx, e.admin, e.input(nine.Add(time.Duration(i)*time.Minute)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	ok, conflicts := 0, 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		requireKind(t, err, httperr.KindConflict)
		conflicts++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestCancel_FreesTheSlot(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)

	cancelled, err := e.status.Execute(ctx, e.admin, ap.ID, UpdateStatusInput{Status: "CANCELLED"})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)

	_, err = e.status.Execute(ctx, e.admin, ap.ID, UpdateStatusInput{Status: "COMPLETED"})
	requireKind(t, err, httperr.KindInvalidTransition)
}

func TestComplete_SetsCommissionAndBooksIncomeOnce(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)

	pix := "PIX"
	done, err := e.status.Execute(ctx, e.admin, ap.ID, UpdateStatusInput{Status: "COMPLETED", PaymentMethod: &pix})
	require.NoError(t, err)
	require.NotNil(t, done.CommissionValue)
	assert.Equal(t, "48.00", done.CommissionValue.StringFixed(2))

	require.Len(t, e.repo.transactions, 1)
	tx := e.repo.transactions[0]
	assert.Equal(t, models.TransactionIncome, tx.Type)
	assert.True(t, decimal.NewFromInt(120).Equal(tx.Amount))
	assert.Equal(t, "Corte", tx.Category)
	assert.Equal(t, ap.ID, *tx.RelatedAppointmentID)
	assert.Equal(t, "PIX", *tx.PaymentMethod)

	_, err = e.status.Execute(ctx, e.admin, ap.ID, UpdateStatusInput{Status: "COMPLETED"})
	requireKind(t, err, httperr.KindInvalidTransition)
	_, err = e.status.Execute(ctx, e.admin, ap.ID, UpdateStatusInput{Status: "CANCELLED"})
	requireKind(t, err, httperr.KindInvalidTransition)
	assert.Len(t, e.repo.transactions, 1)
}

func TestComplete_ConcurrentCallsBookOnce(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = e.status.Execute(ctx, e.admin, ap.ID, UpdateStatusInput{Status: "COMPLETED"})
		}()
	}
	wg.Wait()

	assert.Len(t, e.repo.transactions, 1)
}

func TestUpdateStatus_Validation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)

	_, err = e.status.Execute(ctx, e.admin, ap.ID, UpdateStatusInput{Status: "DONE"})
	requireKind(t, err, httperr.KindValidation)

	_, err = e.status.Execute(ctx, e.admin, ap.ID, UpdateStatusInput{Status: "SCHEDULED"})
	requireKind(t, err, httperr.KindInvalidTransition)

	bad := "CHEQUE"
	_, err = e.status.Execute(ctx, e.admin, ap.ID, UpdateStatusInput{Status: "COMPLETED", PaymentMethod: &bad})
	requireKind(t, err, httperr.KindValidation)
}

func TestTenantIsolation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)

	other := authz.Actor{TenantID: tenantB, ProfessionalID: "x", Role: models.RoleAdmin, Scope: authz.All}

	_, err = e.get.Execute(ctx, other, ap.ID)
	requireKind(t, err, httperr.KindNotFound)
	_, err = e.status.Execute(ctx, other, ap.ID, UpdateStatusInput{Status: "CANCELLED"})
	requireKind(t, err, httperr.KindNotFound)
	err = e.del.Execute(ctx, other, ap.ID)
	requireKind(t, err, httperr.KindNotFound)

	_, err = e.create.Execute(ctx, other, e.input(nine))
	requireKind(t, err, httperr.KindNotFound)

	items, p, err := e.list.Execute(ctx, other, domain.ListFilter{}, dto.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.EqualValues(t, 0, p.Total)
}

func TestBarberIsLimitedToOwnAppointments(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	other := e.repo.addProfessional(tenantA, 30, models.RoleBarber)

	mine, err := e.create.Execute(ctx, e.barber(), e.input(nine))
	require.NoError(t, err)

	in := e.input(nine)
	in.ProfessionalID = other.ID
	_, err = e.create.Execute(ctx, e.barber(), in)
	requireKind(t, err, httperr.KindForbidden)

	theirs, err := e.create.Execute(ctx, e.admin, in)
	require.NoError(t, err)

	_, err = e.get.Execute(ctx, e.barber(), theirs.ID)
	requireKind(t, err, httperr.KindForbidden)
	_, err = e.status.Execute(ctx, e.barber(), theirs.ID, UpdateStatusInput{Status: "CANCELLED"})
	requireKind(t, err, httperr.KindForbidden)

	items, p, err := e.list.Execute(ctx, e.barber(), domain.ListFilter{}, dto.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, mine.ID, items[0].ID)
	assert.EqualValues(t, 1, p.Total)

	items, _, err = e.list.Execute(ctx, e.barber(), domain.ListFilter{ProfessionalID: other.ID}, dto.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdate_RescheduleChecksConflictsExcludingItself(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	first, err := e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)
	_, err = e.create.Execute(ctx, e.admin, e.input(nine.Add(2*time.Hour)))
	require.NoError(t, err)

	shifted := nine.Add(15 * time.Minute)
	moved, err := e.update.Execute(ctx, e.admin, first.ID, UpdateAppointmentInput{StartTime: &shifted})
	require.NoError(t, err)
	assert.Equal(t, shifted.Add(45*time.Minute), moved.EndTime)

	clash := nine.Add(2*time.Hour + 30*time.Minute)
	_, err = e.update.Execute(ctx, e.admin, first.ID, UpdateAppointmentInput{StartTime: &clash})
	requireKind(t, err, httperr.KindConflict)

	_, err = e.status.Execute(ctx, e.admin, first.ID, UpdateStatusInput{Status: "CANCELLED"})
	require.NoError(t, err)
	_, err = e.update.Execute(ctx, e.admin, first.ID, UpdateAppointmentInput{StartTime: &shifted})
	requireKind(t, err, httperr.KindInvalidTransition)
}

func TestUpdate_ServiceChangeRepricesAndRetimes(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	beard := e.repo.addService(tenantA, 60, 30)

	ap, err := e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)

	moved, err := e.update.Execute(ctx, e.admin, ap.ID, UpdateAppointmentInput{ServiceID: &beard.ID})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(moved.Price))
	assert.Equal(t, nine.Add(30*time.Minute), moved.EndTime)
}

func TestDelete_AnyStatusAndFreesSlot(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	ap, err := e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)
	_, err = e.status.Execute(ctx, e.admin, ap.ID, UpdateStatusInput{Status: "COMPLETED"})
	require.NoError(t, err)

	require.NoError(t, e.del.Execute(ctx, e.admin, ap.ID))
	_, err = e.get.Execute(ctx, e.admin, ap.ID)
	requireKind(t, err, httperr.KindNotFound)

	_, err = e.create.Execute(ctx, e.admin, e.input(nine))
	require.NoError(t, err)
}

func TestList_PaginationAndFilters(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := e.create.Execute(ctx, e.admin, e.input(nine.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	items, p, err := e.list.Execute(ctx, e.admin, domain.ListFilter{}, dto.Page{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, dto.Pagination{Page: 2, Limit: 1, Total: 3, TotalPages: 3}, p)
	assert.Equal(t, nine.Add(time.Hour), items[0].StartTime)

	_, _, err = e.list.Execute(ctx, e.admin, domain.ListFilter{Status: "nope"}, dto.Page{Page: 1, Limit: 10})
	requireKind(t, err, httperr.KindValidation)

	items, _, err = e.list.Execute(ctx, e.admin, domain.ListFilter{Status: "SCHEDULED", ClientID: e.client.ID}, dto.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
