package templates

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/voltquote/voltquote/internal/quoting/pricing"
	"github.com/voltquote/voltquote/internal/quoting/quotes"
	"github.com/voltquote/voltquote/internal/shared"
)

// Service owns template CRUD.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs the template service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Source exposes the read side consumed by the quote service.
func (s *Service) Source() quotes.TemplateSource {
	return s.repo
}

func (s *Service) Create(ctx context.Context, req CreateTemplateRequest) (*quotes.Template, error) {
	items, err := buildItems(req.LineItems)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	tmpl := quotes.Template{
		ID:        uuid.NewString(),
		Name:      req.Name,
		LineItems: items,
		Settings:  req.Settings,
		IsDefault: req.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, tmpl); err != nil {
		return nil, err
	}
	s.logger.Info("template created", slog.String("template_id", tmpl.ID), slog.String("name", tmpl.Name))
	return &tmpl, nil
}

func (s *Service) Get(ctx context.Context, id string) (*quotes.Template, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]quotes.Template, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateTemplateRequest) (*quotes.Template, error) {
	tmpl, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tmpl.Name = *req.Name
	}
	if req.LineItems != nil {
		items, err := buildItems(req.LineItems)
		if err != nil {
			return nil, err
		}
		tmpl.LineItems = items
	}
	if req.Settings != nil {
		tmpl.Settings = *req.Settings
	}
	if req.IsDefault != nil {
		tmpl.IsDefault = *req.IsDefault
	}
	tmpl.UpdatedAt = s.now().UTC()

	if err := s.repo.Put(ctx, *tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: template %s", shared.ErrNotFound, id)
	}
	s.logger.Info("template deleted", slog.String("template_id", id))
	return nil
}

func buildItems(rows []TemplateItem) ([]pricing.LineItem, error) {
	items := make([]pricing.LineItem, 0, len(rows))
	for _, row := range rows {
		unit := pricing.Unit(row.Unit)
		if unit == "" {
			unit = pricing.UnitEach
		}
		total, err := pricing.LineItemTotal(row.Quantity, row.UnitPrice, row.Markup)
		if err != nil {
			return nil, fmt.Errorf("%w: item %q: %s", shared.ErrValidation, row.Name, err)
		}
		items = append(items, pricing.LineItem{
			ID:          uuid.NewString(),
			Type:        pricing.ItemType(row.Type),
			Name:        row.Name,
			Description: row.Description,
			Category:    row.Category,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			Markup:      row.Markup,
			Unit:        unit,
			TotalPrice:  total,
			IsOptional:  row.IsOptional,
		})
	}
	return items, nil
}
