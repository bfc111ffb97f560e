package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
	"github.com/BruksfildServices01/barbershop-saas/internal/usecase/report"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

func (r *ReportGormRepository) TotalsByCategory(ctx context.Context, tenantID string, p report.Period) ([]report.CategoryTotal, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("type, category, COALESCE(SUM(amount), 0) AS total").
		Where("barbershop_id = ?", tenantID)

	if p.From != nil {
		q = q.Where("date >= ?", *p.From)
	}
	if p.To != nil {
		q = q.Where("date <= ?", *p.To)
	}

	var rows []report.CategoryTotal
	if err := q.
		Group("type, category").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CommissionsByProfessional aggregates completed appointments by completion date.
func (r *ReportGormRepository) CommissionsByProfessional(
	ctx context.Context,
	tenantID string,
	p report.Period,
	professionalID string,
) ([]report.ProfessionalCommission, error) {

	q := r.db.WithContext(ctx).
		Table("appointments AS a").
		Select(`a.professional_id AS professional_id,
			p.name AS name,
			COUNT(*) AS completed,
			COALESCE(SUM(a.price), 0) AS revenue,
			COALESCE(SUM(a.commission_value), 0) AS commission`).
		Joins("JOIN professionals p ON p.id = a.professional_id").
		Where("a.barbershop_id = ? AND a.status = ?", tenantID, string(domain.StatusCompleted))

	if professionalID != "" {
		q = q.Where("a.professional_id = ?", professionalID)
	}
	if p.From != nil {
		q = q.Where("a.completed_at >= ?", *p.From)
	}
	if p.To != nil {
		q = q.Where("a.completed_at <= ?", *p.To)
	}

	var rows []report.ProfessionalCommission
	if err := q.
		Group("a.professional_id, p.name").
		Order("p.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ report.Repository = (*ReportGormRepository)(nil)
