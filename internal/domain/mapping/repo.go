package mapping

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the mapping, relying on the store's uniqueness
	// constraint on (patient_id, doctor_id) so concurrent duplicate creates
	// cannot both succeed.
	Create(ctx context.Context, m *Mapping) error
	GetByID(ctx context.Context, id uuid.UUID) (*Mapping, error)
	List(ctx context.Context, limit, offset int) ([]*Mapping, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
