package professional

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/dto"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
	"github.com/BruksfildServices01/barbershop-saas/internal/validators"
)

const minPasswordLength = 6

type Repository interface {
	FindByID(ctx context.Context, tenantID, id string) (*models.Professional, error)
	List(ctx context.Context, tenantID string, includeInactive bool, page dto.Page) ([]models.Professional, int64, error)
	Create(ctx context.Context, p *models.Professional) error
	Update(ctx context.Context, p *models.Professional) error
	Deactivate(ctx context.Context, tenantID, id string) error
	Delete(ctx context.Context, tenantID, id string) error
}

// Credentials is the part of the token authority the directory needs.
type Credentials interface {
	HashPassword(password string) (string, error)
	RevokeSessions(ctx context.Context, tenantID, professionalID string) error
}

type CreateInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	CommissionRate *decimal.Decimal
}

// UpdateInput holds optional changes; nil fields are kept.
type UpdateInput struct {
	Name           *string
	Email          *string
	Password       *string
	Role           *string
	CommissionRate *decimal.Decimal
	IsActive       *bool
}

var (
	errForbidden      = httperr.ErrForbidden("forbidden", "Cannot manage another professional")
	errPrivilegedEdit = httperr.ErrForbidden("forbidden", "Only administrators can change role, commission rate or status")
	hundred           = decimal.NewFromInt(100)
)

type Directory struct {
	repo  Repository
	creds Credentials
	audit audit.Recorder
}

func New(repo Repository, creds Credentials, audit audit.Recorder) *Directory {
	return &Directory{repo: repo, creds: creds, audit: audit}
}

func (d *Directory) Create(ctx context.Context, actor authz.Actor, in CreateInput) (*models.Professional, error) {
	p := &models.Professional{
		BarbershopID:   actor.TenantID,
		Name:           strings.TrimSpace(in.Name),
		Email:          validators.NormalizeEmail(in.Email),
		Role:           in.Role,
		CommissionRate: decimal.Zero,
		IsActive:       true,
	}
	if p.Role == "" {
		p.Role = models.RoleBarber
	}
	if in.CommissionRate != nil {
		p.CommissionRate = *in.CommissionRate
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := d.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	p.PasswordHash = hash

	if err := d.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	d.record(actor, "professional_created", p.ID)
	return p, nil
}

func (d *Directory) Get(ctx context.Context, actor authz.Actor, id string) (*models.Professional, error) {
	if !actor.May(id) {
		return nil, errForbidden
	}
	return d.repo.FindByID(ctx, actor.TenantID, id)
}

func (d *Directory) List(ctx context.Context, actor authz.Actor, includeInactive bool, page dto.Page) ([]models.Professional, dto.Pagination, error) {
	items, total, err := d.repo.List(ctx, actor.TenantID, includeInactive, page)
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	return items, dto.NewPagination(page, total), nil
}

func (d *Directory) Update(ctx context.Context, actor authz.Actor, id string, in UpdateInput) (*models.Professional, error) {
	if !actor.May(id) {
		return nil, errForbidden
	}
	if actor.Restricted() && (in.Role != nil || in.CommissionRate != nil || in.IsActive != nil) {
		return nil, errPrivilegedEdit
	}

	p, err := d.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	// tokens carry role and email as claims
	revoke := false
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := validators.NormalizeEmail(*in.Email)
		revoke = revoke || email != p.Email
		p.Email = email
	}
	if in.Role != nil {
		revoke = revoke || *in.Role != p.Role
		p.Role = *in.Role
	}
	if in.CommissionRate != nil {
		p.CommissionRate = *in.CommissionRate
	}
	if in.IsActive != nil {
		revoke = revoke || (p.IsActive && !*in.IsActive)
		p.IsActive = *in.IsActive
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if in.Password != nil {
		if err := checkPassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := d.creds.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		p.PasswordHash = hash
		revoke = true
	}

	if err := d.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if revoke {
		if err := d.creds.RevokeSessions(ctx, p.BarbershopID, p.ID); err != nil {
			return nil, err
		}
	}

	d.record(actor, "professional_updated", p.ID)
	return p, nil
}

// Delete deactivates the professional, or removes the row when hard is set.
// Either way every outstanding session is revoked.
func (d *Directory) Delete(ctx context.Context, actor authz.Actor, id string, hard bool) error {
	var err error
	if hard {
		err = d.repo.Delete(ctx, actor.TenantID, id)
	} else {
		err = d.repo.Deactivate(ctx, actor.TenantID, id)
	}
	if err != nil {
		return err
	}

	if err := d.creds.RevokeSessions(ctx, actor.TenantID, id); err != nil {
		return err
	}

	d.record(actor, "professional_deleted", id)
	return nil
}

func (d *Directory) record(actor authz.Actor, action, id string) {
	d.audit.Dispatch(audit.Event{
		BarbershopID:   actor.TenantID,
		ProfessionalID: actor.ProfessionalID,
		Action:         action,
		Entity:         "professional",
		EntityID:       id,
	})
}

// ======================================================
// VALIDATION
// ======================================================

func validate(p *models.Professional) error {
	if p.Name == "" {
		return httperr.ErrValidation("invalid_name", "Name is required")
	}
	if !strings.Contains(p.Email, "@") {
		return httperr.ErrValidation("invalid_email", "Email is invalid")
	}
	if p.Role != models.RoleAdmin && p.Role != models.RoleBarber {
		return httperr.ErrValidation("invalid_role", "Role must be ADMIN or BARBER")
	}
	if p.CommissionRate.IsNegative() || p.CommissionRate.GreaterThan(hundred) {
		return httperr.ErrValidation("invalid_commission_rate", "Commission rate must be between 0 and 100")
	}
	return nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return httperr.ErrValidation("invalid_password", "Password must have at least 6 characters")
	}
	return nil
}
