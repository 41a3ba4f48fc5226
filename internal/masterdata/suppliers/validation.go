package suppliers

import "github.com/gestionpet/gestionpet/internal/masterdata/shared"

// Validate returns every constraint sup violates. Email uniqueness is left
// to the store.
func Validate(sup Supplier) []shared.FieldError {
	return shared.Check(sup)
}
