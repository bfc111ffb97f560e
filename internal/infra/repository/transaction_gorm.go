package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/ledger"
)

type TransactionGormRepository struct {
	scoped[models.Transaction]
}

func NewTransactionGormRepository(db *gorm.DB) *TransactionGormRepository {
	return &TransactionGormRepository{scoped[models.Transaction]{db: db, entity: "transaction"}}
}

func (r *TransactionGormRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.create(ctx, tx)
}

func (r *TransactionGormRepository) Get(ctx context.Context, tenantID, id string) (*models.Transaction, error) {
	return r.get(ctx, tenantID, id)
}

func (r *TransactionGormRepository) Update(ctx context.Context, tx *models.Transaction) error {
	return r.save(ctx, tx)
}

func (r *TransactionGormRepository) Delete(ctx context.Context, tenantID, id string) error {
	return r.delete(ctx, tenantID, id)
}

func (r *TransactionGormRepository) List(
	ctx context.Context,
	tenantID string,
	f ledger.Filter,
	page dto.Page,
) ([]models.Transaction, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("barbershop_id = ?", tenantID)

	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.ProfessionalID != "" {
		q = q.Where("professional_id = ?", f.ProfessionalID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Transaction
	if err := q.
		Order("date DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

var _ ledger.Repository = (*TransactionGormRepository)(nil)
