package shared

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ParseID reads the numeric {id} route parameter.
func ParseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
