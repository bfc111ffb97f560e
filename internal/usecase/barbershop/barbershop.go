package barbershop

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/auth"
	"github.com/BruksfildServices01/barbershop-saas/internal/authz"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
	"github.com/BruksfildServices01/barbershop-saas/internal/timezone"
	"github.com/BruksfildServices01/barbershop-saas/internal/validators"
)

const minAdminPasswordLength = 8

type Repository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
	Update(ctx context.Context, shop *models.Barbershop) error
	Register(ctx context.Context, shop *models.Barbershop, admin *models.Professional) error
}

type Tokens interface {
	HashPassword(password string) (string, error)
	Issue(ctx context.Context, p *models.Professional) (*auth.TokenPair, error)
}

// TenantCache drops a resolved tenant after its settings change.
type TenantCache interface {
	Invalidate(ctx context.Context, slug string)
}

type RegisterInput struct {
	Name          string
	Slug          string
	Timezone      string
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

type Registration struct {
	Barbershop *models.Barbershop
	Admin      *models.Professional
	Tokens     *auth.TokenPair
}

// UpdateInput holds optional changes; nil fields are kept. The slug is
// immutable.
type UpdateInput struct {
	Name     *string
	IsActive *bool
	Timezone *string
}

type Options struct {
	// CheckEmailDomain rejects admin emails whose domain has no MX or A record.
	CheckEmailDomain bool
}

type Barbershops struct {
	repo   Repository
	tokens Tokens
	cache  TenantCache
	audit  audit.Recorder
	opts   Options
}

func New(repo Repository, tokens Tokens, cache TenantCache, audit audit.Recorder, opts Options) *Barbershops {
	return &Barbershops{repo: repo, tokens: tokens, cache: cache, audit: audit, opts: opts}
}

// ======================================================
// REGISTER
// ======================================================

// Register provisions a tenant together with its first ADMIN and signs the
// admin in.
func (b *Barbershops) Register(ctx context.Context, in RegisterInput) (*Registration, error) {
	shop := &models.Barbershop{
		Name:     strings.TrimSpace(in.Name),
		Slug:     strings.TrimSpace(in.Slug),
		Timezone: strings.TrimSpace(in.Timezone),
		IsActive: true,
	}
	if shop.Timezone == "" {
		shop.Timezone = timezone.DefaultTimezone
	}

	switch {
	case shop.Name == "":
		return nil, httperr.ErrValidation("invalid_name", "Name is required")
	case !validators.IsSlug(shop.Slug):
		return nil, httperr.ErrValidation("invalid_slug", "Slug must be 3-50 lowercase letters, digits or hyphens")
	case !timezone.IsValid(shop.Timezone):
		return nil, httperr.ErrValidation("invalid_timezone", "Unknown timezone")
	}

	admin := &models.Professional{
		Name:     strings.TrimSpace(in.AdminName),
		Email:    validators.NormalizeEmail(in.AdminEmail),
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	switch {
	case admin.Name == "":
		return nil, httperr.ErrValidation("invalid_name", "Admin name is required")
	case !strings.Contains(admin.Email, "@"):
		return nil, httperr.ErrValidation("invalid_email", "Admin email is invalid")
	case b.opts.CheckEmailDomain && !validators.EmailDomainAcceptsMail(ctx, admin.Email):
		return nil, httperr.ErrValidation("invalid_email_domain", "Email domain does not accept mail")
	case len(in.AdminPassword) < minAdminPasswordLength:
		return nil, httperr.ErrValidation("invalid_password", "Password must have at least 8 characters")
	}

	hash, err := b.tokens.HashPassword(in.AdminPassword)
	if err != nil {
		return nil, err
	}
	admin.PasswordHash = hash

	if err := b.repo.Register(ctx, shop, admin); err != nil {
		return nil, err
	}

	pair, err := b.tokens.Issue(ctx, admin)
	if err != nil {
		return nil, err
	}

	b.audit.Dispatch(audit.Event{
		BarbershopID:   shop.ID,
		ProfessionalID: admin.ID,
		Action:         "barbershop_registered",
		Entity:         "barbershop",
		EntityID:       shop.ID,
	})

	return &Registration{Barbershop: shop, Admin: admin, Tokens: pair}, nil
}

var errShopNotFound = httperr.ErrNotFound("barbershop_not_found", "barbershop not found")

// ======================================================
// SETTINGS
// ======================================================

// Lookup returns an active barbershop by slug. Inactive shops are reported
// as not found so their existence is not disclosed.
func (b *Barbershops) Lookup(ctx context.Context, slug string) (*models.Barbershop, error) {
	if !validators.IsSlug(slug) {
		return nil, errShopNotFound
	}
	shop, err := b.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !shop.IsActive {
		return nil, errShopNotFound
	}
	return shop, nil
}

func (b *Barbershops) Update(ctx context.Context, actor authz.Actor, shop *models.Barbershop, in UpdateInput) (*models.Barbershop, error) {
	updated := *shop

	if in.Name != nil {
		updated.Name = strings.TrimSpace(*in.Name)
		if updated.Name == "" {
			return nil, httperr.ErrValidation("invalid_name", "Name is required")
		}
	}
	if in.IsActive != nil {
		updated.IsActive = *in.IsActive
	}
	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return nil, httperr.ErrValidation("invalid_timezone", "Unknown timezone")
		}
		updated.Timezone = *in.Timezone
	}

	if err := b.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	b.cache.Invalidate(ctx, updated.Slug)

	b.audit.Dispatch(audit.Event{
		BarbershopID:   actor.TenantID,
		ProfessionalID: actor.ProfessionalID,
		Action:         "barbershop_updated",
		Entity:         "barbershop",
		EntityID:       updated.ID,
	})

	return &updated, nil
}
