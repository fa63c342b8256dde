package templates

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/voltquote/voltquote/internal/platform/httpx"
	"github.com/voltquote/voltquote/internal/shared"
)

// Handler exposes the template API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the template handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTemplateRequest
	if !h.decode(w, r, &req) {
		return
	}
	tmpl, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, "create template", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tmpl)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list templates", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "get template", err)
		return
	}
	httpx.JSON(w, http.StatusOK, tmpl)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTemplateRequest
	if !h.decode(w, r, &req) {
		return
	}
	tmpl, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, "update template", err)
		return
	}
	httpx.JSON(w, http.StatusOK, tmpl)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, "delete template", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return false
	}
	if err := h.validate.Struct(target); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err.Error()))
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, action string, err error) {
	h.logger.Error(action, slog.Any("error", err))
	httpx.RespondError(w, err)
}
