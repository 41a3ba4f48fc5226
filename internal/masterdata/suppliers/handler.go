package suppliers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gestionpet/gestionpet/internal/masterdata/shared"
	"github.com/gestionpet/gestionpet/internal/platform/httpx"
)

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
	suppliers, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "list suppliers", err)
		return
	}
	if suppliers == nil {
		suppliers = []Supplier{}
	}
	httpx.JSON(w, http.StatusOK, suppliers)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.fail(w, r, "get supplier", err)
		return
	}
	supplier, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get supplier", err)
		return
	}
	httpx.JSON(w, http.StatusOK, supplier)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var supplier Supplier
	if err := httpx.DecodeJSON(w, r, &supplier); err != nil {
		h.fail(w, r, "create supplier", err)
		return
	}
	created, err := h.service.Create(r.Context(), supplier)
	if err != nil {
		h.fail(w, r, "create supplier", err)
		return
	}
	h.logger.Info("supplier created", slog.Int64("id", created.ID))
	httpx.JSON(w, http.StatusOK, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.fail(w, r, "update supplier", err)
		return
	}
	var supplier Supplier
	if err := httpx.DecodeJSON(w, r, &supplier); err != nil {
		h.fail(w, r, "update supplier", err)
		return
	}
	updated, err := h.service.Update(r.Context(), id, supplier)
	if err != nil {
		h.fail(w, r, "update supplier", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.fail(w, r, "delete supplier", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete supplier", err)
		return
	}
	h.logger.Info("supplier deleted", slog.Int64("id", id))
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
