package appointment

import (
	domain "github.com/BruksfildServices01/barbershop-saas/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
)

var (
	errForbidden = httperr.ErrForbidden("forbidden", "Appointment belongs to another professional")
	errConflict  = httperr.ErrConflict(domain.ConflictCode, "Professional already has an appointment in this time range")
)

func notFound(what string) error {
	return httperr.ErrNotFound(what+"_not_found", what+" not found")
}
