package suppliers

import (
	"context"

	"github.com/gestionpet/gestionpet/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates and inserts supplier. A duplicate email is rejected by the
// store and surfaces as shared.ErrConflict.
func (s *Service) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	supplier = supplier.normalized()
	supplier.ID = 0
	if err := shared.NewValidationError(Validate(supplier)); err != nil {
		return Supplier{}, err
	}
	return s.repo.Save(ctx, supplier)
}

// Update replaces every field of the stored supplier except its ID.
func (s *Service) Update(ctx context.Context, id int64, supplier Supplier) (Supplier, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Supplier{}, err
	}
	supplier = supplier.normalized()
	existing.Contact = supplier.Contact
	existing.Email = supplier.Email
	existing.Name = supplier.Name
	existing.Address = supplier.Address
	existing.Phone = supplier.Phone
	if err := shared.NewValidationError(Validate(existing)); err != nil {
		return Supplier{}, err
	}
	return s.repo.Save(ctx, existing)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, existing)
}
