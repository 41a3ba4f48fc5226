package materials

import "github.com/gestionpet/gestionpet/internal/masterdata/shared"

// Material represents a raw material. Description is optional.
type Material struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"notblank,min=3"`
	Description string `json:"description"`
}

func (m Material) normalized() Material {
	m.Name = shared.Normalize(m.Name)
	m.Description = shared.Normalize(m.Description)
	return m
}
