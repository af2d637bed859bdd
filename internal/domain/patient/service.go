package patient

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// Create stores a new patient owned by callerID. Whatever owner the client
// supplied is discarded: ownership is server-assigned, never client-assigned.
func (s *Service) Create(ctx context.Context, callerID uuid.UUID, p *Patient) error {
	p.CreatedBy = callerID
	return s.patients.Create(ctx, p)
}

// Get returns the patient when it exists and callerID owns it. A missing id
// is a not-found; an existing record with another owner is forbidden.
func (s *Service) Get(ctx context.Context, callerID, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(callerID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns only the caller's patients.
func (s *Service) List(ctx context.Context, callerID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.patients.ListByOwner(ctx, callerID, limit, offset)
}

// Update replaces the patient's fields wholesale. The owner column is never
// written.
func (s *Service) Update(ctx context.Context, callerID, id uuid.UUID, name string, dob Date, address string) (*Patient, error) {
	p, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.DateOfBirth = dob
	p.Address = address
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Patch applies only the provided fields.
func (s *Service) Patch(ctx context.Context, callerID, id uuid.UUID, name *string, dob *Date, address *string) (*Patient, error) {
	p, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		p.Name = *name
	}
	if dob != nil {
		p.DateOfBirth = *dob
	}
	if address != nil {
		p.Address = *address
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the patient and its mappings after the ownership gate.
func (s *Service) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}
