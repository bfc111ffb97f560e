package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
)

// scoped implements the tenant-filtered CRUD shared by the directory
// entities. Every query carries barbershop_id.
type scoped[T any] struct {
	db     *gorm.DB
	entity string
}

func (r scoped[T]) get(ctx context.Context, tenantID, id string) (*T, error) {
	var m T
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", id, tenantID).
		First(&m).Error; err != nil {
		return nil, translate(err, r.entity)
	}
	return &m, nil
}

func (r scoped[T]) list(
	ctx context.Context,
	tenantID string,
	includeInactive bool,
	page dto.Page,
	narrow func(*gorm.DB) *gorm.DB,
) ([]T, int64, error) {

	q := r.db.WithContext(ctx).
		Model(new(T)).
		Where("barbershop_id = ?", tenantID)

	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if narrow != nil {
		q = narrow(q)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []T
	if err := q.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r scoped[T]) create(ctx context.Context, m *T) error {
	return translate(r.db.WithContext(ctx).Create(m).Error, r.entity)
}

func (r scoped[T]) save(ctx context.Context, m *T) error {
	return translate(r.db.WithContext(ctx).Save(m).Error, r.entity)
}

func (r scoped[T]) deactivate(ctx context.Context, tenantID, id string) error {
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND barbershop_id = ?", id, tenantID).
		Update("is_active", false)
	if res.Error != nil {
		return translate(res.Error, r.entity)
	}
	if res.RowsAffected == 0 {
		return notFound(r.entity)
	}
	return nil
}

func (r scoped[T]) delete(ctx context.Context, tenantID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", id, tenantID).
		Delete(new(T))
	if res.Error != nil {
		return translate(res.Error, r.entity)
	}
	if res.RowsAffected == 0 {
		return notFound(r.entity)
	}
	return nil
}
