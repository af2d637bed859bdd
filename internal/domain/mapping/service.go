package mapping

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medrec/medrec/internal/platform/apperr"
)

type Service struct {
	mappings Repository
}

func NewService(mappings Repository) *Service {
	return &Service{mappings: mappings}
}

// Create links a patient to a doctor. The uniqueness of the pair and the
// existence of both referenced rows are enforced by the store in the same
// insert, so the error already carries the right kind; this only attaches a
// readable message.
func (s *Service) Create(ctx context.Context, patientID, doctorID uuid.UUID) (*Mapping, error) {
	m := &Mapping{PatientID: patientID, DoctorID: doctorID}
	if err := s.mappings.Create(ctx, m); err != nil {
		switch {
		case errors.Is(err, apperr.ErrConflict):
			return nil, fmt.Errorf("patient is already mapped to this doctor: %w", apperr.ErrConflict)
		case errors.Is(err, apperr.ErrNotFound):
			return nil, fmt.Errorf("patient or doctor does not exist: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Mapping, error) {
	return s.mappings.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Mapping, int, error) {
	return s.mappings.List(ctx, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.mappings.Delete(ctx, id)
}
