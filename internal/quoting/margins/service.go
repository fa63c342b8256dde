package margins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voltquote/voltquote/internal/shared"
)

const settingsCacheKey = "margins:settings"

// Service loads and updates the pricing policy. Reads are served from a
// Redis-cached snapshot so concurrent quote computations share one
// immutable policy value.
type Service struct {
	repo   Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewService constructs the margins service.
func NewService(repo Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, client: client, ttl: ttl, logger: logger}
}

// Get returns the current policy, falling back to defaults when none has
// been saved yet. Cache failures degrade to a repository read.
func (s *Service) Get(ctx context.Context) (MarginSettings, error) {
	if s.client != nil {
		raw, err := s.client.Get(ctx, settingsCacheKey).Bytes()
		if err == nil {
			var settings MarginSettings
			if err := json.Unmarshal(raw, &settings); err == nil {
				return settings, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("margins cache read failed", slog.Any("error", err))
		}
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Defaults(), nil
		}
		return MarginSettings{}, err
	}

	if s.client != nil {
		if raw, err := json.Marshal(stored); err == nil {
			if err := s.client.Set(ctx, settingsCacheKey, raw, s.ttl).Err(); err != nil {
				s.logger.Warn("margins cache write failed", slog.Any("error", err))
			}
		}
	}
	return *stored, nil
}

// Update validates and persists a new policy, then invalidates the cache.
func (s *Service) Update(ctx context.Context, settings MarginSettings) error {
	if err := validate(settings); err != nil {
		return err
	}
	if err := s.repo.Put(ctx, settings); err != nil {
		return err
	}
	if s.client != nil {
		if err := s.client.Del(ctx, settingsCacheKey).Err(); err != nil {
			s.logger.Warn("margins cache invalidation failed", slog.Any("error", err))
		}
	}
	return nil
}

func validate(settings MarginSettings) error {
	if settings.DefaultMarkup < 0 {
		return fmt.Errorf("%w: default markup must not be negative", shared.ErrValidation)
	}
	if settings.MinimumMargin < 0 {
		return fmt.Errorf("%w: minimum margin must not be negative", shared.ErrValidation)
	}
	if settings.MaximumDiscount < 0 || settings.MaximumDiscount > 100 {
		return fmt.Errorf("%w: maximum discount must be between 0 and 100", shared.ErrValidation)
	}
	for cat, markup := range settings.CategoryMarkups {
		if markup < 0 {
			return fmt.Errorf("%w: markup for category %q must not be negative", shared.ErrValidation, cat)
		}
	}
	for i, tier := range settings.VolumeDiscounts {
		if tier.MinimumQuantity <= 0 {
			return fmt.Errorf("%w: volume discount %d: minimum quantity must be positive", shared.ErrValidation, i)
		}
		if tier.DiscountPercentage < 0 || tier.DiscountPercentage > 100 {
			return fmt.Errorf("%w: volume discount %d: percentage must be between 0 and 100", shared.ErrValidation, i)
		}
		if len(tier.ApplicableCategories) == 0 {
			return fmt.Errorf("%w: volume discount %d: at least one category required", shared.ErrValidation, i)
		}
	}
	return nil
}
