package patient

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/medrec/medrec/internal/platform/apperr"
)

// Owns is the single access predicate for patient records: only the identity
// that created a patient may read or mutate it.
func Owns(callerID uuid.UUID, p *Patient) bool {
	return p.CreatedBy == callerID
}

// Authorize gates get/update/delete on an existing patient. The record's
// existence is deliberately disclosed to non-owners via 403 rather than
// collapsed into 404.
func Authorize(callerID uuid.UUID, p *Patient) error {
	if !Owns(callerID, p) {
		return fmt.Errorf("patient belongs to another user: %w", apperr.ErrForbidden)
	}
	return nil
}
