package materials

import "github.com/gestionpet/gestionpet/internal/masterdata/shared"

// Validate returns every constraint m violates. Name uniqueness needs the
// store and is checked by Service.Create.
func Validate(m Material) []shared.FieldError {
	return shared.Check(m)
}
