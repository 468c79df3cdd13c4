package catalog

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	cat, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Greater(t, cat.Size(), 0)
	assert.NotEmpty(t, cat.Categories())

	// Every product id resolves back to itself.
	for _, p := range cat.Products() {
		got, err := cat.ProductByID(p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	}
}

func TestProductByIDNotFound(t *testing.T) {
	cat := New(nil, nil)

	_, err := cat.ProductByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPriceBoundsDeriveFromEffectivePrices(t *testing.T) {
	cat := New([]models.Product{
		{ID: "1", Price: 1000},
		{ID: "2", Price: 2000, OriginalPrice: 9000},
	}, nil)

	min, max := cat.PriceBounds()
	assert.Equal(t, int64(0), min)
	assert.Equal(t, int64(9000), max)
}

func TestPriceBoundsFallbackForEmptyCatalog(t *testing.T) {
	cat := New(nil, nil)

	min, max := cat.PriceBounds()
	assert.Equal(t, int64(0), min)
	assert.Equal(t, fallbackMaxPrice, max)
}
