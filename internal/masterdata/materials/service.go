package materials

import (
	"context"
	"errors"

	"github.com/gestionpet/gestionpet/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Material, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Material, error) {
	return s.repo.FindByID(ctx, id)
}

// Create rejects a name that is already stored before attempting the insert.
func (s *Service) Create(ctx context.Context, material Material) (Material, error) {
	material = material.normalized()
	material.ID = 0
	if err := shared.NewValidationError(Validate(material)); err != nil {
		return Material{}, err
	}
	_, err := s.repo.FindByName(ctx, material.Name)
	switch {
	case err == nil:
		return Material{}, conflict(material.Name)
	case !errors.Is(err, shared.ErrNotFound):
		return Material{}, err
	}
	return s.repo.Save(ctx, material)
}

// Update replaces name and description. The name is not checked against
// other materials here; the store's unique index still rejects duplicates.
func (s *Service) Update(ctx context.Context, id int64, material Material) (Material, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Material{}, err
	}
	material = material.normalized()
	existing.Name = material.Name
	existing.Description = material.Description
	if err := shared.NewValidationError(Validate(existing)); err != nil {
		return Material{}, err
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
