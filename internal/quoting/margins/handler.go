package margins

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/voltquote/voltquote/internal/platform/httpx"
	"github.com/voltquote/voltquote/internal/shared"
)

// Handler exposes the pricing policy over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the margins handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// Show returns the active policy.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("load margin settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}

// Update replaces the policy.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return
	}
	if err := h.service.Update(r.Context(), req.toSettings()); err != nil {
		h.logger.Error("update margin settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	settings, err := h.service.Get(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}
