// Package authz holds the single ownership policy consulted by every
// mutating record operation. Resource services never reimplement the check.
package authz

import (
	"github.com/quangxuan98765/data-processing-api/internal/domain"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

// Gate decides whether an authenticated user may mutate a record owned by
// someone. Policy: owner or superuser. Staff alone does not bypass ownership.
type Gate struct{}

func NewGate() *Gate { return &Gate{} }

// CanMutate returns nil when actor may update or delete a record owned by
// ownerID, and ErrForbidden otherwise. Denial is distinct from not-found by
// construction: callers resolve the record first.
func (g *Gate) CanMutate(actor *domain.PublicUser, ownerID int64) error {
	if actor == nil {
		return domerrors.ErrForbidden
	}
	if actor.IsSuperuser || actor.ID == ownerID {
		return nil
	}
	return domerrors.ErrForbidden
}
