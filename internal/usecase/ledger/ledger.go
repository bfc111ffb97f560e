package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

// Filter fields are ANDed. From and To are inclusive.
type Filter struct {
	Type           string
	Category       string
	ProfessionalID string
	From           *time.Time
	To             *time.Time
}

type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	Get(ctx context.Context, tenantID, id string) (*models.Transaction, error)
	List(ctx context.Context, tenantID string, f Filter, page dto.Page) ([]models.Transaction, int64, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, tenantID, id string) error
}

type CreateInput struct {
	Type          string
	Amount        decimal.Decimal
	Category      string
	Description   *string
	Date          *time.Time
	PaymentMethod *string
}

// UpdateInput holds optional changes; nil fields are kept.
type UpdateInput struct {
	Type          *string
	Amount        *decimal.Decimal
	Category      *string
	Description   *string
	Date          *time.Time
	PaymentMethod *string
}

var errForbidden = httperr.ErrForbidden("forbidden", "Transaction belongs to another professional")

type Ledger struct {
	repo  Repository
	audit audit.Recorder
	now   func() time.Time
}

func New(repo Repository, audit audit.Recorder) *Ledger {
	return &Ledger{repo: repo, audit: audit, now: time.Now}
}

func (l *Ledger) Create(ctx context.Context, actor authz.Actor, in CreateInput) (*models.Transaction, error) {
	date := l.now()
	if in.Date != nil {
		date = *in.Date
	}

	profID := actor.ProfessionalID
	tx := &models.Transaction{
		BarbershopID:   actor.TenantID,
		Type:           in.Type,
		Amount:         in.Amount,
		Category:       strings.TrimSpace(in.Category),
		Description:    in.Description,
		Date:           date,
		PaymentMethod:  in.PaymentMethod,
		ProfessionalID: &profID,
	}
	if err := validate(tx); err != nil {
		return nil, err
	}

	if err := l.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	l.record(actor, "transaction_created", tx.ID)
	return tx, nil
}

func (l *Ledger) Get(ctx context.Context, actor authz.Actor, id string) (*models.Transaction, error) {
	tx, err := l.repo.Get(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !actor.May(owner(tx)) {
		return nil, errForbidden
	}
	return tx, nil
}

func (l *Ledger) List(ctx context.Context, actor authz.Actor, f Filter, page dto.Page) ([]models.Transaction, dto.Pagination, error) {
	if f.Type != "" && !isType(f.Type) {
		return nil, dto.Pagination{}, errType
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, dto.Pagination{}, httperr.ErrValidation("invalid_date_range", "startDate must not be after endDate")
	}
	if actor.Restricted() {
		f.ProfessionalID = actor.ProfessionalID
	}

	items, total, err := l.repo.List(ctx, actor.TenantID, f, page)
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	return items, dto.NewPagination(page, total), nil
}

func (l *Ledger) Update(ctx context.Context, actor authz.Actor, id string, in UpdateInput) (*models.Transaction, error) {
	tx, err := l.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Type != nil {
		tx.Type = *in.Type
	}
	if in.Amount != nil {
		tx.Amount = *in.Amount
	}
	if in.Category != nil {
		tx.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		tx.Description = in.Description
	}
	if in.Date != nil {
		tx.Date = *in.Date
	}
	if in.PaymentMethod != nil {
		tx.PaymentMethod = in.PaymentMethod
	}
	if err := validate(tx); err != nil {
		return nil, err
	}

	if err := l.repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	l.record(actor, "transaction_updated", tx.ID)
	return tx, nil
}

func (l *Ledger) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if _, err := l.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := l.repo.Delete(ctx, actor.TenantID, id); err != nil {
		return err
	}

	l.record(actor, "transaction_deleted", id)
	return nil
}

func (l *Ledger) record(actor authz.Actor, action, id string) {
	l.audit.Dispatch(audit.Event{
		BarbershopID:   actor.TenantID,
		ProfessionalID: actor.ProfessionalID,
		Action:         action,
		Entity:         "transaction",
		EntityID:       id,
	})
}

// ======================================================
// VALIDATION
// ======================================================

var errType = httperr.ErrValidation("invalid_type", "Type must be INCOME or EXPENSE")

func isType(t string) bool {
	return t == models.TransactionIncome || t == models.TransactionExpense
}

func validate(tx *models.Transaction) error {
	if !isType(tx.Type) {
		return errType
	}
	if !tx.Amount.IsPositive() {
		return httperr.ErrValidation("invalid_amount", "Amount must be positive")
	}
	if tx.Category == "" {
		return httperr.ErrValidation("invalid_category", "Category is required")
	}
	if tx.PaymentMethod != nil && !models.IsPaymentMethod(*tx.PaymentMethod) {
		return httperr.ErrValidation("invalid_payment_method", "Payment method must be CASH, CREDIT_CARD, DEBIT_CARD or PIX")
	}
	return nil
}

func owner(tx *models.Transaction) string {
	if tx.ProfessionalID == nil {
		return ""
	}
	return *tx.ProfessionalID
}
