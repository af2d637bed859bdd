package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	// GetByID fetches a patient regardless of owner; the service applies the
	// ownership gate so missing and forbidden stay distinguishable.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	// ListByOwner returns only patients created by ownerID.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Patient, int, error)
	// Update never touches created_by.
	Update(ctx context.Context, p *Patient) error
	// Delete removes the patient and every mapping referencing it in one
	// transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
