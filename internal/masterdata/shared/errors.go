package shared

import (
	"fmt"

	"github.com/gestionpet/gestionpet/internal/platform/httpx"
)

var (
	ErrNotFound   = httpx.ErrNotFound
	ErrConflict   = httpx.ErrConflict
	ErrValidation = httpx.ErrValidation
	ErrInvalidID  = fmt.Errorf("%w: invalid ID", httpx.ErrValidation)
)
