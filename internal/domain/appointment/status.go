package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ConflictCode identifies an overlap rejection, whether detected by the
// calendar check or by the storage constraint.
const ConflictCode = "appointment_conflict"

func InitialStatus() Status {
	return StatusScheduled
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", httperr.ErrValidation("invalid_status", "Status must be SCHEDULED, COMPLETED or CANCELLED")
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transitions
// ===============================

// CanTransition allows only SCHEDULED -> COMPLETED and SCHEDULED -> CANCELLED.
func CanTransition(from, to Status) error {
	if from == StatusScheduled && (to == StatusCompleted || to == StatusCancelled) {
		return nil
	}
	return httperr.ErrInvalidTransition(
		"invalid_transition",
		fmt.Sprintf("Cannot change status from %s to %s", from, to),
	)
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}

// CanReschedule reports whether time or participants may still change.
func CanReschedule(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrInvalidTransition("not_reschedulable", "Only scheduled appointments can be changed")
	}
	return nil
}
