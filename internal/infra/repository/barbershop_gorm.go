package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

type BarbershopGormRepository struct {
	db *gorm.DB
}

func NewBarbershopGormRepository(db *gorm.DB) *BarbershopGormRepository {
	return &BarbershopGormRepository{db: db}
}

func (r *BarbershopGormRepository) FindBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, translate(err, "barbershop")
	}
	return &shop, nil
}

func (r *BarbershopGormRepository) Update(ctx context.Context, shop *models.Barbershop) error {
	return translate(
		r.db.WithContext(ctx).
			Model(shop).
			Select("name", "is_active", "timezone", "updated_at").
			Updates(shop).Error,
		"barbershop",
	)
}

// Register creates a barbershop and its first admin atomically.
func (r *BarbershopGormRepository) Register(ctx context.Context, shop *models.Barbershop, admin *models.Professional) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shop).Error; err != nil {
			return translate(err, "barbershop")
		}
		admin.BarbershopID = shop.ID
		if err := tx.Create(admin).Error; err != nil {
			return translate(err, "professional")
		}
		return nil
	})
}
