package datagen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

func TestCreateProductsSingleProvider(t *testing.T) {
	s := newTestSeeder(t, 31)
	providers, err := s.CreateProviders(1)
	require.NoError(t, err)

	products, err := s.CreateProducts(context.Background(), 3, providers)
	require.NoError(t, err)
	require.Len(t, products, 3)

	for i, p := range products {
		assert.True(t, p.RegisteredAt.After(providers[0].RegisteredAt),
			"a product cannot predate its provider")
		assert.False(t, p.RegisteredAt.After(ProductWindowEnd))
		if i > 0 {
			assert.True(t, p.RegisteredAt.After(products[i-1].RegisteredAt),
				"catalog entries must be strictly ordered in time")
		}
	}
}

func TestCreateProductsCatalogFields(t *testing.T) {
	s := newTestSeeder(t, 32)
	providers, err := s.CreateProviders(3)
	require.NoError(t, err)

	products, err := s.CreateProducts(context.Background(), 8, providers)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	names := map[string]bool{}
	for _, p := range products {
		assert.False(t, names[p.Name], "duplicate product name %s", p.Name)
		names[p.Name] = true

		assert.True(t, p.SalePrice.GreaterThan(p.SupplierPrice),
			"sale price must cover the supplier price for %s", p.Name)
		assert.Equal(t, 90, p.WarrantyDays)
		assert.Equal(t, model.ProductActive, p.State)
		assert.NotEmpty(t, p.Description)
		assert.NotEmpty(t, p.Dimensions)
		assert.True(t, p.Weight.IsPositive())
		// The image generator is stubbed out, the fallback URL applies.
		assert.True(t, strings.HasPrefix(p.ImageURL, "https://placekitten.com/300/"))
		assert.True(t, p.UpdatedAt.After(p.RegisteredAt))
	}
}

func TestCreateProductsSpreadAcrossProviders(t *testing.T) {
	s := newTestSeeder(t, 33)
	providers, err := s.CreateProviders(4)
	require.NoError(t, err)

	products, err := s.CreateProducts(context.Background(), 8, providers)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	byProvider := map[uint]int{}
	for _, p := range products {
		byProvider[p.ProviderID]++
	}
	assert.GreaterOrEqual(t, len(byProvider), 2, "the catalog should not come from a single provider")
}
