package margins

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltquote/voltquote/internal/shared"
)

type memSettingsRepo struct {
	settings *MarginSettings
	getCalls int
}

func (m *memSettingsRepo) Get(ctx context.Context) (*MarginSettings, error) {
	m.getCalls++
	if m.settings == nil {
		return nil, shared.ErrNotFound
	}
	return m.settings, nil
}

func (m *memSettingsRepo) Put(ctx context.Context, settings MarginSettings) error {
	m.settings = &settings
	return nil
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to defaults when nothing is stored", func(t *testing.T) {
		svc := NewService(&memSettingsRepo{}, testRedis(t), time.Minute, nil)

		settings, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, Defaults(), settings)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		repo := &memSettingsRepo{settings: &MarginSettings{DefaultMarkup: 18, MaximumDiscount: 15}}
		svc := NewService(repo, testRedis(t), time.Minute, nil)

		first, err := svc.Get(ctx)
		require.NoError(t, err)
		second, err := svc.Get(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, repo.getCalls)
	})

	t.Run("nil cache degrades to repository reads", func(t *testing.T) {
		repo := &memSettingsRepo{settings: &MarginSettings{DefaultMarkup: 18}}
		svc := NewService(repo, nil, time.Minute, nil)

		_, err := svc.Get(ctx)
		require.NoError(t, err)
		_, err = svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, repo.getCalls)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and invalidates the cached snapshot", func(t *testing.T) {
		repo := &memSettingsRepo{settings: &MarginSettings{DefaultMarkup: 18}}
		svc := NewService(repo, testRedis(t), time.Minute, nil)

		_, err := svc.Get(ctx)
		require.NoError(t, err)

		update := MarginSettings{DefaultMarkup: 22, MaximumDiscount: 10}
		require.NoError(t, svc.Update(ctx, update))

		settings, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 22, settings.DefaultMarkup, 0.001)
	})

	t.Run("rejects out-of-range values", func(t *testing.T) {
		svc := NewService(&memSettingsRepo{}, nil, time.Minute, nil)

		for _, settings := range []MarginSettings{
			{DefaultMarkup: -1},
			{MinimumMargin: -5},
			{MaximumDiscount: 120},
			{CategoryMarkups: map[string]float64{"chargers": -2}},
			{VolumeDiscounts: []VolumeDiscount{{MinimumQuantity: 0, DiscountPercentage: 10, ApplicableCategories: []string{"chargers"}}}},
			{VolumeDiscounts: []VolumeDiscount{{MinimumQuantity: 2, DiscountPercentage: 120, ApplicableCategories: []string{"chargers"}}}},
			{VolumeDiscounts: []VolumeDiscount{{MinimumQuantity: 2, DiscountPercentage: 10}}},
		} {
			err := svc.Update(ctx, settings)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrValidation))
		}
	})
}

func TestMarkupFor(t *testing.T) {
	settings := Defaults()
	assert.InDelta(t, 25, settings.MarkupFor("chargers"), 0.001)
	assert.InDelta(t, 20, settings.MarkupFor("unknown-category"), 0.001)
}
