package materials

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gestionpet/gestionpet/internal/masterdata/shared"
	"github.com/gestionpet/gestionpet/internal/platform/httpx"
)

// Handler serves the material endpoints as JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	materials, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "list materials", err)
		return
	}
	if materials == nil {
		materials = []Material{}
	}
	httpx.JSON(w, http.StatusOK, materials)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.fail(w, r, "get material", err)
		return
	}
	material, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get material", err)
		return
	}
	httpx.JSON(w, http.StatusOK, material)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var material Material
	if err := httpx.DecodeJSON(w, r, &material); err != nil {
		h.fail(w, r, "create material", err)
		return
	}
	created, err := h.service.Create(r.Context(), material)
	if err != nil {
		h.fail(w, r, "create material", err)
		return
	}
	h.logger.Info("material created", slog.Int64("id", created.ID))
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.fail(w, r, "update material", err)
		return
	}
	var material Material
	if err := httpx.DecodeJSON(w, r, &material); err != nil {
		h.fail(w, r, "update material", err)
		return
	}
	updated, err := h.service.Update(r.Context(), id, material)
	if err != nil {
		h.fail(w, r, "update material", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.fail(w, r, "delete material", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete material", err)
		return
	}
	h.logger.Info("material deleted", slog.Int64("id", id))
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	instance := httpx.RespondError(w, err)
	switch {
	case instance != "":
		h.logger.Error(op+" failed", slog.Any("error", err), slog.String("instance", instance), slog.String("path", r.URL.Path))
	case errors.Is(err, shared.ErrConflict):
		h.logger.Warn(op+" rejected", slog.Any("error", err))
	default:
		h.logger.Debug(op+" rejected", slog.Any("error", err))
	}
}
