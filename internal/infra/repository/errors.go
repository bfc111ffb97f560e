package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	dbpkg "github.com/BruksfildServices01/barbershop-saas/internal/db"
	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
)

// unique index -> conflict code
var uniqueCodes = map[string]string{
	"idx_barbershops_slug":        "slug_already_exists",
	"idx_professional_shop_email": "email_already_exists",
	"idx_client_shop_phone":       "phone_already_exists",
}

// translate maps storage errors to business errors for entity.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), dbpkg.IsInvalidText(err):
		return notFound(entity)
	case dbpkg.IsExclusionViolation(err):
		return httperr.ErrConflict(domain.ConflictCode, "Professional already has an appointment in this time range")
	case dbpkg.IsUniqueViolation(err):
		code, ok := uniqueCodes[dbpkg.ConstraintName(err)]
		if !ok {
			code = entity + "_already_exists"
		}
		return httperr.ErrConflict(code, fmt.Sprintf("%s already exists", entity))
	case dbpkg.IsForeignKeyViolation(err):
		return httperr.ErrConflict(entity+"_in_use", fmt.Sprintf("%s is referenced by other records", entity))
	}
	return err
}

func notFound(entity string) error {
	return httperr.ErrNotFound(entity+"_not_found", fmt.Sprintf("%s not found", entity))
}
