package quotes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/voltquote/voltquote/internal/platform/httpx"
	"github.com/voltquote/voltquote/internal/shared"
	"github.com/voltquote/voltquote/jobs"
)

// Handler exposes the quote API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	queue    *jobs.Client
	validate *validator.Validate
	now      func() time.Time
}

// NewHandler constructs the quote handler. The queue is optional; when set,
// client decisions enqueue a notification task.
func NewHandler(logger *slog.Logger, service *Service, queue *jobs.Client) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:   logger,
		service:  service,
		queue:    queue,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if !h.decode(w, r, &req) {
		return
	}
	q, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, "create quote", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListQuotesRequest{
		Limit:  parseIntParam(r, "limit"),
		Offset: parseIntParam(r, "offset"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := Status(status)
		req.Status = &s
	}

	quotes, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.fail(w, "list quotes", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"quotes": quotes,
		"total":  total,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "get quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) ShowByNumber(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.GetByNumber(r.Context(), chi.URLParam(r, "quoteNumber"))
	if err != nil {
		h.fail(w, "get quote by number", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuoteRequest
	if !h.decode(w, r, &req) {
		return
	}
	q, err := h.service.UpdateDraft(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, "update quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, "delete quote", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddLineItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	q, err := h.service.AddLineItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, "add line item", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateLineItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	q, err := h.service.UpdateLineItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), req)
	if err != nil {
		h.fail(w, "update line item", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.RemoveLineItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	if err != nil {
		h.fail(w, "remove line item", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req AddProductRequest
	if !h.decode(w, r, &req) {
		return
	}
	q, err := h.service.AddProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, "add product", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var req ApplyTemplateRequest
	if !h.decode(w, r, &req) {
		return
	}
	q, err := h.service.ApplyTemplate(r.Context(), chi.URLParam(r, "id"), req.TemplateID)
	if err != nil {
		h.fail(w, "apply template", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) ApplyVolumeDiscounts(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.ApplyVolumeDiscounts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "apply volume discounts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if !h.decode(w, r, &req) {
		return
	}
	q, err := h.service.SubmitForReview(r.Context(), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		h.fail(w, "submit quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Send(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "send quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	// View pings may arrive without a body.
	_ = httpx.DecodeJSON(r, &req)
	q, err := h.service.MarkViewed(r.Context(), chi.URLParam(r, "id"), req.Source)
	if err != nil {
		h.fail(w, "record view", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) RecordDecision(w http.ResponseWriter, r *http.Request) {
	var req DecisionRequest
	if !h.decode(w, r, &req) {
		return
	}
	q, err := h.service.RecordDecision(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, "record decision", err)
		return
	}

	if h.queue != nil {
		payload := jobs.DecisionNotifyPayload{
			QuoteID:     q.ID,
			QuoteNumber: q.QuoteNumber,
			Decision:    string(req.Decision),
			Recipient:   q.CreatedBy,
		}
		if _, err := h.queue.EnqueueDecisionNotify(r.Context(), payload); err != nil {
			h.logger.Warn("enqueue decision notification", slog.Any("error", err))
		}
	}

	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if !h.decode(w, r, &req) {
		return
	}
	q, err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, "add comment", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// Render returns the display-ready snapshot consumed by the PDF service.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "render quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewRenderSnapshot(*q, h.now()))
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

func parseIntParam(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
