package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-saas/internal/cache"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

// Repository returns a NotFound business error for unknown slugs.
type Repository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
}

// Resolver maps the tenant slug header to an active barbershop. Lookups are
// cached; the cache is an optimization and its failures fall back to the DB.
type Resolver struct {
	repo  Repository
	store cache.Store
	ttl   time.Duration
	log   *zap.Logger
}

func NewResolver(repo Repository, store cache.Store, ttl time.Duration, log *zap.Logger) *Resolver {
	return &Resolver{repo: repo, store: store, ttl: ttl, log: log}
}

func cacheKey(slug string) string {
	return "tenant:slug:" + slug
}

// Resolve matches slug exactly. Unknown and inactive tenants are both
// reported as TenantNotFound.
func (r *Resolver) Resolve(ctx context.Context, slug string) (*models.Barbershop, error) {
	if slug == "" {
		return nil, httperr.ErrTenantNotFound()
	}

	shop, err := r.cached(ctx, slug)
	if shop == nil {
		if err != nil {
			r.log.Warn("tenant cache read failed", zap.String("slug", slug), zap.Error(err))
		}

		shop, err = r.repo.FindBySlug(ctx, slug)
		if err != nil {
			if httperr.IsKind(err, httperr.KindNotFound) {
				return nil, httperr.ErrTenantNotFound()
			}
			return nil, err
		}
		r.remember(ctx, shop)
	}

	if !shop.IsActive {
		return nil, httperr.ErrTenantNotFound()
	}
	return shop, nil
}

// Invalidate drops the cached entry after the barbershop changes.
func (r *Resolver) Invalidate(ctx context.Context, slug string) {
	if err := r.store.Del(ctx, cacheKey(slug)); err != nil {
		r.log.Warn("tenant cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}

func (r *Resolver) cached(ctx context.Context, slug string) (*models.Barbershop, error) {
	raw, err := r.store.Get(ctx, cacheKey(slug))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}

	var shop models.Barbershop
	if err := json.Unmarshal([]byte(raw), &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *Resolver) remember(ctx context.Context, shop *models.Barbershop) {
	b, err := json.Marshal(shop)
	if err != nil {
		return
	}
	if err := r.store.Set(ctx, cacheKey(shop.Slug), string(b), r.ttl); err != nil {
		r.log.Warn("tenant cache write failed", zap.String("slug", shop.Slug), zap.Error(err))
	}
}
