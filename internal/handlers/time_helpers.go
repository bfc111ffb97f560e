package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
	"github.com/BruksfildServices01/barbershop-saas/internal/timezone"
)

// locationFromShop is the barbershop's official timezone. Date-only filters
// are interpreted in it.
func locationFromShop(shop *models.Barbershop) *time.Location {
	if shop == nil {
		return timezone.Location("")
	}
	return timezone.Location(shop.Timezone)
}

// queryBound reads an optional date filter. Upper bounds given as a plain
// date cover that whole day.
func queryBound(c *gin.Context, key string, shop *models.Barbershop, upper bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}

	t, err := timezone.ParseBound(raw, locationFromShop(shop), upper)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", key+" must be YYYY-MM-DD or RFC3339")
	}
	return &t, nil
}

// queryRange reads a [fromKey, toKey] pair of date filters.
func queryRange(c *gin.Context, fromKey, toKey string, shop *models.Barbershop) (*time.Time, *time.Time, error) {
	from, err := queryBound(c, fromKey, shop, false)
	if err != nil {
		return nil, nil, err
	}
	to, err := queryBound(c, toKey, shop, true)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
