package quotes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/voltquote/voltquote/internal/quoting/catalog"
	"github.com/voltquote/voltquote/internal/quoting/margins"
	"github.com/voltquote/voltquote/internal/quoting/pricing"
	"github.com/voltquote/voltquote/internal/quoting/projects"
	"github.com/voltquote/voltquote/internal/shared"
)

const defaultValidityDays = 30

// PolicyProvider supplies the shared pricing policy snapshot.
type PolicyProvider interface {
	Get(ctx context.Context) (margins.MarginSettings, error)
}

// Service orchestrates quote operations: every public method reads the
// latest snapshot, applies a pure transform and writes the whole quote
// back. There is no field-level merge across operations.
type Service struct {
	repo      Repository
	templates TemplateSource
	source    projects.Source
	catalog   catalog.Repository
	policy    PolicyProvider
	logger    *slog.Logger
	now       func() time.Time
}

// ServiceConfig collects the service dependencies.
type ServiceConfig struct {
	Repo      Repository
	Templates TemplateSource
	Source    projects.Source
	Catalog   catalog.Repository
	Policy    PolicyProvider
	Logger    *slog.Logger
	Now       func() time.Time
}

// NewService constructs the quote service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      cfg.Repo,
		templates: cfg.Templates,
		source:    cfg.Source,
		catalog:   cfg.Catalog,
		policy:    cfg.Policy,
		logger:    logger,
		now:       now,
	}
}

// Create builds a new draft quote, optionally seeded from a template and/or
// an external project record.
func (s *Service) Create(ctx context.Context, req CreateQuoteRequest) (*Quote, error) {
	policy, err := s.policy.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pricing policy: %w", err)
	}

	now := s.now()
	q := Quote{
		ID:               uuid.NewString(),
		QuoteNumber:      NewQuoteNumber(now),
		Status:           StatusDraft,
		ClientInfo:       req.ClientInfo,
		Title:            req.Title,
		Description:      req.Description,
		DiscountType:     pricing.DiscountPercentage,
		Settings:         Settings{ValidityDays: defaultValidityDays},
		CreatedAt:        now,
		CreatedBy:        req.CreatedBy,
		RequiresApproval: req.RequiresApproval,
	}
	if req.Settings != nil {
		q.Settings = *req.Settings
	}

	tmpl, err := s.resolveTemplate(ctx, req)
	if err != nil {
		return nil, err
	}
	if tmpl != nil {
		if q, err = ApplyTemplate(q, *tmpl); err != nil {
			return nil, err
		}
		if err := s.templates.IncrementUsage(ctx, tmpl.ID); err != nil {
			return nil, fmt.Errorf("record template usage: %w", err)
		}
	}

	if req.ProjectID != nil {
		record, err := s.source.GetProjectData(ctx, *req.ProjectID)
		if err != nil {
			return nil, err
		}
		q.ProjectID = req.ProjectID
		if q, err = IntegrateProject(q, record, policy); err != nil {
			return nil, err
		}
	}

	if q.Settings.ValidityDays <= 0 {
		q.Settings.ValidityDays = defaultValidityDays
	}
	q.ValidUntil = now.AddDate(0, 0, q.Settings.ValidityDays)

	if err := recomputeTotals(&q); err != nil {
		return nil, err
	}
	if err := s.save(ctx, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Service) resolveTemplate(ctx context.Context, req CreateQuoteRequest) (*Template, error) {
	switch {
	case req.TemplateID != nil:
		tmpl, err := s.templates.Get(ctx, *req.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("get template: %w", err)
		}
		return tmpl, nil
	case req.UseDefaultTemplate:
		tmpl, err := s.templates.GetDefault(ctx)
		if err != nil {
			return nil, fmt.Errorf("get default template: %w", err)
		}
		return tmpl, nil
	default:
		return nil, nil
	}
}

// Get returns a quote snapshot.
func (s *Service) Get(ctx context.Context, id string) (*Quote, error) {
	return s.repo.Get(ctx, id)
}

// GetByNumber returns a quote snapshot by its quote number.
func (s *Service) GetByNumber(ctx context.Context, quoteNumber string) (*Quote, error) {
	return s.repo.GetByNumber(ctx, quoteNumber)
}

// List returns quote snapshots with an optional status filter.
func (s *Service) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	p := shared.Pagination{Limit: req.Limit, Offset: req.Offset}.Normalise(50, 500)
	req.Limit = p.Limit
	req.Offset = p.Offset
	return s.repo.List(ctx, req)
}

// UpdateDraft applies header-level edits. Only drafts are mutable.
func (s *Service) UpdateDraft(ctx context.Context, id string, req UpdateQuoteRequest) (*Quote, error) {
	q, err := s.getEditable(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Description != nil {
		q.Description = *req.Description
	}
	if req.ClientInfo != nil {
		q.ClientInfo = *req.ClientInfo
	}
	if req.Settings != nil {
		q.Settings = *req.Settings
		if q.Settings.ValidityDays > 0 {
			q.ValidUntil = q.CreatedAt.AddDate(0, 0, q.Settings.ValidityDays)
		}
	}
	if req.RequiresApproval != nil {
		q.RequiresApproval = *req.RequiresApproval
	}
	if req.Discount != nil || req.DiscountType != nil {
		if req.Discount != nil {
			q.Discount = *req.Discount
		}
		if req.DiscountType != nil {
			q.DiscountType = *req.DiscountType
		}
		if err := s.checkDiscountBounds(ctx, q.Discount, q.DiscountType); err != nil {
			return nil, err
		}
	}

	if err := recomputeTotals(q); err != nil {
		return nil, err
	}
	if err := s.save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// AddLineItem appends a line item to a draft. When the request omits the
// markup, the policy's category markup applies.
func (s *Service) AddLineItem(ctx context.Context, id string, req AddLineItemRequest) (*Quote, error) {
	q, err := s.getEditable(ctx, id)
	if err != nil {
		return nil, err
	}
	policy, err := s.policy.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pricing policy: %w", err)
	}

	item := req.toItem()
	if req.Markup == nil {
		item.Markup = policy.MarkupFor(item.Category)
	}
	if err := checkMarkupBounds(item.Markup, policy); err != nil {
		return nil, err
	}

	updated, err := AddLineItem(*q, item)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateLineItem merges a patch into one line item of a draft.
func (s *Service) UpdateLineItem(ctx context.Context, id, itemID string, req UpdateLineItemRequest) (*Quote, error) {
	q, err := s.getEditable(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Markup != nil {
		policy, err := s.policy.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("load pricing policy: %w", err)
		}
		if err := checkMarkupBounds(*req.Markup, policy); err != nil {
			return nil, err
		}
	}

	updated, err := UpdateLineItem(*q, itemID, req.toPatch())
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveLineItem drops a line item from a draft.
func (s *Service) RemoveLineItem(ctx context.Context, id, itemID string) (*Quote, error) {
	q, err := s.getEditable(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := RemoveLineItem(*q, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddProduct seeds a line item from the product catalog.
func (s *Service) AddProduct(ctx context.Context, id string, req AddProductRequest) (*Quote, error) {
	q, err := s.getEditable(ctx, id)
	if err != nil {
		return nil, err
	}
	product, err := s.catalog.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	policy, err := s.policy.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pricing policy: %w", err)
	}

	productID := product.ID
	item := pricing.LineItem{
		Type:           itemTypeForCategory(product.Category),
		ProductID:      &productID,
		Name:           product.Name,
		Description:    product.Description,
		Category:       product.Category,
		Quantity:       req.Quantity,
		UnitPrice:      product.Pricing.RecommendedRetail,
		Markup:         policy.MarkupFor(product.Category),
		Cost:           product.Pricing.Cost,
		Unit:           pricing.UnitEach,
		Specifications: product.Specifications,
	}
	if product.Supplier != "" {
		item.Supplier = &pricing.SupplierInfo{Name: product.Supplier, SKU: product.SKU}
	}

	updated, err := AddLineItem(*q, item)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ApplyTemplate replaces a draft's line items and settings from a template
// and increments the template usage counter.
func (s *Service) ApplyTemplate(ctx context.Context, id, templateID string) (*Quote, error) {
	q, err := s.getEditable(ctx, id)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.templates.Get(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	updated, err := ApplyTemplate(*q, *tmpl)
	if err != nil {
		return nil, err
	}
	if err := s.templates.IncrementUsage(ctx, tmpl.ID); err != nil {
		return nil, fmt.Errorf("record template usage: %w", err)
	}
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ApplyVolumeDiscounts applies the policy's volume tiers to a draft once.
func (s *Service) ApplyVolumeDiscounts(ctx context.Context, id string) (*Quote, error) {
	q, err := s.getEditable(ctx, id)
	if err != nil {
		return nil, err
	}
	policy, err := s.policy.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pricing policy: %w", err)
	}

	updated, err := ApplyVolumeDiscounts(*q, policy)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SubmitForReview routes a draft through internal approval.
func (s *Service) SubmitForReview(ctx context.Context, id, userID string) (*Quote, error) {
	return s.transition(ctx, id, func(q Quote) (Quote, error) {
		return SubmitForReview(q, userID, s.now())
	})
}

// Send marks the quote as sent to the client.
func (s *Service) Send(ctx context.Context, id string) (*Quote, error) {
	return s.transition(ctx, id, func(q Quote) (Quote, error) {
		return Send(q, s.now())
	})
}

// MarkViewed records a client open of the quote.
func (s *Service) MarkViewed(ctx context.Context, id, source string) (*Quote, error) {
	return s.transition(ctx, id, func(q Quote) (Quote, error) {
		return MarkViewed(q, ClientView{ViewedAt: s.now(), Source: source})
	})
}

// RecordDecision applies the client's accept/reject answer.
func (s *Service) RecordDecision(ctx context.Context, id string, req DecisionRequest) (*Quote, error) {
	decision := Decision{
		QuoteID:   id,
		Decision:  req.Decision,
		Timestamp: s.now(),
		Comments:  req.Comments,
	}
	if req.Timestamp != nil {
		decision.Timestamp = *req.Timestamp
	}

	return s.transition(ctx, id, func(q Quote) (Quote, error) {
		switch decision.Decision {
		case DecisionAccepted:
			return Accept(q, decision)
		case DecisionRejected:
			return Reject(q, decision)
		default:
			return q, fmt.Errorf("%w: unknown decision %q", shared.ErrValidation, decision.Decision)
		}
	})
}

// AddComment appends a comment; allowed in any lifecycle state.
func (s *Service) AddComment(ctx context.Context, id string, req CommentRequest) (*Quote, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := AddComment(*q, req.UserID, req.Message, req.IsInternal, s.now())
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the stored snapshot. This is a repository operation, not a
// lifecycle transition.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: quote %s", shared.ErrNotFound, id)
	}
	return nil
}

// ExpireDue sweeps outstanding quotes whose validity window has passed and
// returns the number expired.
func (s *Service) ExpireDue(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.repo.ListExpirable(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, q := range due {
		updated, err := Expire(q, now)
		if err != nil {
			s.logger.Warn("skip expiry", slog.String("quote", q.QuoteNumber), slog.Any("error", err))
			continue
		}
		if err := s.save(ctx, &updated); err != nil {
			s.logger.Error("persist expiry", slog.String("quote", q.QuoteNumber), slog.Any("error", err))
			continue
		}
		expired++
	}
	return expired, nil
}

func (s *Service) transition(ctx context.Context, id string, fn func(Quote) (Quote, error)) (*Quote, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := fn(*q)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) getEditable(ctx context.Context, id string) (*Quote, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.Status.Editable() {
		return nil, fmt.Errorf("%w: quote %s is %s, only %s quotes can be edited", shared.ErrInvalidStatus, q.QuoteNumber, q.Status, StatusDraft)
	}
	return q, nil
}

func (s *Service) checkDiscountBounds(ctx context.Context, discount float64, discountType pricing.DiscountType) error {
	if discountType != pricing.DiscountPercentage {
		return nil
	}
	policy, err := s.policy.Get(ctx)
	if err != nil {
		return fmt.Errorf("load pricing policy: %w", err)
	}
	if policy.MaximumDiscount > 0 && discount > policy.MaximumDiscount {
		return fmt.Errorf("%w: discount %.2f%% exceeds policy maximum %.2f%%", shared.ErrValidation, discount, policy.MaximumDiscount)
	}
	return nil
}

func checkMarkupBounds(markup float64, policy margins.MarginSettings) error {
	if policy.MinimumMargin > 0 && markup < policy.MinimumMargin {
		return fmt.Errorf("%w: markup %.2f%% below policy minimum %.2f%%", shared.ErrValidation, markup, policy.MinimumMargin)
	}
	return nil
}

func itemTypeForCategory(category string) pricing.ItemType {
	switch category {
	case "chargers":
		return pricing.TypeCharger
	case "accessories":
		return pricing.TypeAccessory
	case "installation":
		return pricing.TypeInstallation
	case "service", "services":
		return pricing.TypeService
	default:
		return pricing.TypeCustom
	}
}

func (s *Service) save(ctx context.Context, q *Quote) error {
	q.Version++
	q.UpdatedAt = s.now()
	return s.repo.Put(ctx, *q)
}
