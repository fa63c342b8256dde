package templates

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltquote/voltquote/internal/quoting/quotes"
	"github.com/voltquote/voltquote/internal/shared"
)

type memTemplateRepo struct {
	templates map[string]quotes.Template
}

func newMemTemplateRepo() *memTemplateRepo {
	return &memTemplateRepo{templates: make(map[string]quotes.Template)}
}

func (m *memTemplateRepo) Get(ctx context.Context, id string) (*quotes.Template, error) {
	tmpl, ok := m.templates[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &tmpl, nil
}

func (m *memTemplateRepo) GetDefault(ctx context.Context) (*quotes.Template, error) {
	for _, tmpl := range m.templates {
		if tmpl.IsDefault {
			t := tmpl
			return &t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memTemplateRepo) List(ctx context.Context) ([]quotes.Template, error) {
	out := make([]quotes.Template, 0, len(m.templates))
	for _, tmpl := range m.templates {
		out = append(out, tmpl)
	}
	return out, nil
}

func (m *memTemplateRepo) Put(ctx context.Context, tmpl quotes.Template) error {
	m.templates[tmpl.ID] = tmpl
	return nil
}

func (m *memTemplateRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.templates[id]; !ok {
		return false, nil
	}
	delete(m.templates, id)
	return true, nil
}

func (m *memTemplateRepo) IncrementUsage(ctx context.Context, id string) error {
	tmpl, ok := m.templates[id]
	if !ok {
		return shared.ErrNotFound
	}
	tmpl.UsageCount++
	m.templates[id] = tmpl
	return nil
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	repo := newMemTemplateRepo()
	svc := NewService(repo, nil)

	t.Run("derives line totals from the blueprint rows", func(t *testing.T) {
		tmpl, err := svc.Create(ctx, CreateTemplateRequest{
			Name: "Standard AC install",
			LineItems: []TemplateItem{
				{Type: "charger", Category: "chargers", Name: "AC Charger", Quantity: 2, UnitPrice: 1000, Markup: 25},
			},
			Settings:  quotes.Settings{ValidityDays: 14},
			IsDefault: true,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, tmpl.ID)
		require.Len(t, tmpl.LineItems, 1)
		assert.NotEmpty(t, tmpl.LineItems[0].ID)
		assert.InDelta(t, 2500, tmpl.LineItems[0].TotalPrice, 0.001)
		assert.Equal(t, "each", string(tmpl.LineItems[0].Unit))
		assert.True(t, tmpl.IsDefault)
	})

	t.Run("negative unit price is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTemplateRequest{
			Name: "Broken",
			LineItems: []TemplateItem{
				{Type: "charger", Category: "chargers", Name: "x", Quantity: 1, UnitPrice: -10},
			},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newMemTemplateRepo()
	svc := NewService(repo, nil)

	tmpl, err := svc.Create(ctx, CreateTemplateRequest{Name: "Original"})
	require.NoError(t, err)

	name := "Renamed"
	updated, err := svc.Update(ctx, tmpl.ID, UpdateTemplateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = svc.Update(ctx, "missing", UpdateTemplateRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	repo := newMemTemplateRepo()
	svc := NewService(repo, nil)

	tmpl, err := svc.Create(ctx, CreateTemplateRequest{Name: "Short lived"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, tmpl.ID))

	err = svc.Delete(ctx, tmpl.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestSourceSatisfiesTemplateSource(t *testing.T) {
	var _ quotes.TemplateSource = newMemTemplateRepo()
	svc := NewService(newMemTemplateRepo(), nil)
	assert.NotNil(t, svc.Source())
}
