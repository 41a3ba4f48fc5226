package suppliers

import "github.com/gestionpet/gestionpet/internal/masterdata/shared"

// Supplier represents a supplier entity
type Supplier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"notblank"`
	Contact string `json:"contact" validate:"notblank"`
	Phone   string `json:"phone" validate:"notblank,min=10,max=15"`
	Email   string `json:"email" validate:"notblank,email"`
	Address string `json:"address" validate:"notblank"`
}

func (s Supplier) normalized() Supplier {
	s.Name = shared.Normalize(s.Name)
	s.Contact = shared.Normalize(s.Contact)
	s.Phone = shared.Normalize(s.Phone)
	s.Email = shared.Normalize(s.Email)
	s.Address = shared.Normalize(s.Address)
	return s
}
