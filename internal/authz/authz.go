// Package authz holds the role capability table consulted by every protected
// route after authentication.
package authz

import (
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

type Resource string

type Action string

const (
	Professionals Resource = "professionals"
	Clients       Resource = "clients"
	Services      Resource = "services"
	Appointments  Resource = "appointments"
	Transactions  Resource = "transactions"
	Reports       Resource = "reports"
	Barbershop    Resource = "barbershop"
	Audit         Resource = "audit"
)

const (
	List        Action = "list"
	Read        Action = "read"
	Create      Action = "create"
	Update      Action = "update"
	Delete      Action = "delete"
	ChangeState Action = "status"
	Financial   Action = "financial"
	Commissions Action = "commissions"
)

// Scope is how much of a resource a role may touch.
type Scope int

const (
	Deny Scope = iota
	Own
	All
)

// Covers reports whether a caller with this scope may act on a row owned by ownerID.
func (s Scope) Covers(callerID, ownerID string) bool {
	switch s {
	case All:
		return true
	case Own:
		return callerID != "" && callerID == ownerID
	default:
		return false
	}
}

type rule map[Action]Scope

// Table is resource -> role -> action -> scope. Missing entries deny.
type Table map[Resource]map[string]rule

func DefaultTable() Table {
	all := func(actions ...Action) rule {
		r := rule{}
		for _, a := range actions {
			r[a] = All
		}
		return r
	}

	return Table{
		Professionals: {
			models.RoleAdmin:  all(List, Read, Create, Update, Delete),
			models.RoleBarber: {Read: Own, Update: Own},
		},
		Clients: {
			models.RoleAdmin:  all(List, Read, Create, Update, Delete),
			models.RoleBarber: all(List, Read, Create, Update),
		},
		Services: {
			models.RoleAdmin:  all(List, Read, Create, Update, Delete),
			models.RoleBarber: all(List, Read),
		},
		Appointments: {
			models.RoleAdmin:  all(List, Read, Create, Update, ChangeState, Delete),
			models.RoleBarber: {List: Own, Read: Own, Create: Own, Update: Own, ChangeState: Own},
		},
		Transactions: {
			models.RoleAdmin:  all(List, Read, Create, Update, Delete),
			models.RoleBarber: {List: Own, Read: Own, Create: Own},
		},
		Reports: {
			models.RoleAdmin:  all(Financial, Commissions),
			models.RoleBarber: {Commissions: Own},
		},
		Barbershop: {
			models.RoleAdmin: all(Update),
		},
		Audit: {
			models.RoleAdmin: all(List),
		},
	}
}

func (t Table) Scope(role string, res Resource, act Action) Scope {
	return t[res][role][act]
}

type Guard struct {
	table Table
}

func NewGuard(t Table) *Guard {
	return &Guard{table: t}
}

// Authorize returns the caller's scope, or Forbidden when the role has none.
func (g *Guard) Authorize(role string, res Resource, act Action) (Scope, error) {
	s := g.table.Scope(role, res, act)
	if s == Deny {
		return Deny, httperr.ErrForbidden("forbidden", "Insufficient permissions")
	}
	return s, nil
}

// Actor is the authenticated caller together with the scope granted for the
// operation being performed.
type Actor struct {
	TenantID       string
	ProfessionalID string
	Role           string
	Scope          Scope
}

// May reports whether the actor may act on a row owned by ownerID.
func (a Actor) May(ownerID string) bool {
	return a.Scope.Covers(a.ProfessionalID, ownerID)
}

// Restricted is true when results must be narrowed to the actor's own rows.
func (a Actor) Restricted() bool {
	return a.Scope != All
}
