package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

// --------------------------------------------------
// Professionals
// --------------------------------------------------

type ProfessionalGormRepository struct {
	scoped[models.Professional]
}

func NewProfessionalGormRepository(db *gorm.DB) *ProfessionalGormRepository {
	return &ProfessionalGormRepository{scoped[models.Professional]{db: db, entity: "professional"}}
}

func (r *ProfessionalGormRepository) FindByEmail(ctx context.Context, tenantID, email string) (*models.Professional, error) {
	var p models.Professional
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND email = ?", tenantID, email).
		First(&p).Error; err != nil {
		return nil, translate(err, r.entity)
	}
	return &p, nil
}

func (r *ProfessionalGormRepository) FindByID(ctx context.Context, tenantID, id string) (*models.Professional, error) {
	return r.get(ctx, tenantID, id)
}

func (r *ProfessionalGormRepository) List(ctx context.Context, tenantID string, includeInactive bool, page dto.Page) ([]models.Professional, int64, error) {
	return r.list(ctx, tenantID, includeInactive, page, nil)
}

func (r *ProfessionalGormRepository) Create(ctx context.Context, p *models.Professional) error {
	return r.create(ctx, p)
}

func (r *ProfessionalGormRepository) Update(ctx context.Context, p *models.Professional) error {
	return r.save(ctx, p)
}

func (r *ProfessionalGormRepository) Deactivate(ctx context.Context, tenantID, id string) error {
	return r.deactivate(ctx, tenantID, id)
}

func (r *ProfessionalGormRepository) Delete(ctx context.Context, tenantID, id string) error {
	return r.delete(ctx, tenantID, id)
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

type ClientGormRepository struct {
	scoped[models.Client]
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{scoped[models.Client]{db: db, entity: "client"}}
}

func (r *ClientGormRepository) Get(ctx context.Context, tenantID, id string) (*models.Client, error) {
	return r.get(ctx, tenantID, id)
}

// List matches search against name, phone and email, case-insensitively.
func (r *ClientGormRepository) List(ctx context.Context, tenantID string, includeInactive bool, search string, page dto.Page) ([]models.Client, int64, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	return r.list(ctx, tenantID, includeInactive, page, func(q *gorm.DB) *gorm.DB {
		if search == "" {
			return q
		}
		like := "%" + search + "%"
		return q.Where("(LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?)", like, like, like)
	})
}

func (r *ClientGormRepository) Create(ctx context.Context, c *models.Client) error {
	return r.create(ctx, c)
}

func (r *ClientGormRepository) Update(ctx context.Context, c *models.Client) error {
	return r.save(ctx, c)
}

func (r *ClientGormRepository) Deactivate(ctx context.Context, tenantID, id string) error {
	return r.deactivate(ctx, tenantID, id)
}

func (r *ClientGormRepository) Delete(ctx context.Context, tenantID, id string) error {
	return r.delete(ctx, tenantID, id)
}

// --------------------------------------------------
// Services
// --------------------------------------------------

type ServiceGormRepository struct {
	scoped[models.Service]
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{scoped[models.Service]{db: db, entity: "service"}}
}

func (r *ServiceGormRepository) Get(ctx context.Context, tenantID, id string) (*models.Service, error) {
	return r.get(ctx, tenantID, id)
}

func (r *ServiceGormRepository) List(ctx context.Context, tenantID string, includeInactive bool, page dto.Page) ([]models.Service, int64, error) {
	return r.list(ctx, tenantID, includeInactive, page, nil)
}

func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	return r.create(ctx, s)
}

func (r *ServiceGormRepository) Update(ctx context.Context, s *models.Service) error {
	return r.save(ctx, s)
}

func (r *ServiceGormRepository) Deactivate(ctx context.Context, tenantID, id string) error {
	return r.deactivate(ctx, tenantID, id)
}

func (r *ServiceGormRepository) Delete(ctx context.Context, tenantID, id string) error {
	return r.delete(ctx, tenantID, id)
}
