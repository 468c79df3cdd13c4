package catalog

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specProducts() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Title:       "P1",
			Description: "A shirt",
			Price:       1000,
			Categories:  []string{"apparel"},
			InStock:     true,
		},
		{
			ID:            "2",
			Title:         "P2",
			Description:   "An album",
			Price:         10000,
			OriginalPrice: 15000,
			Categories:    []string{"music"},
			InStock:       false,
		},
	}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestQuickFilterSale(t *testing.T) {
	got := Filter{Quick: QuickOnSale}.Apply(specProducts())
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestPriceRangeUsesEffectivePrice(t *testing.T) {
	// P2's effective price is its original price (15000), outside [0, 5000].
	got := Filter{MaxPrice: 5000}.Apply(specProducts())
	assert.Equal(t, []string{"1"}, ids(got))

	// Inclusive bounds.
	got = Filter{MinPrice: 1000, MaxPrice: 1000}.Apply(specProducts())
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestSearchMatchesCategory(t *testing.T) {
	got := Filter{Query: "music"}.Apply(specProducts())
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	got := Filter{Query: "SHIRT"}.Apply(specProducts())
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestCategoryFilterUsesOrSemantics(t *testing.T) {
	got := Filter{Categories: []string{"apparel", "music"}}.Apply(specProducts())
	assert.Equal(t, []string{"1", "2"}, ids(got))

	got = Filter{Categories: []string{"gift-card"}}.Apply(specProducts())
	assert.Empty(t, got)
}

func TestQuickFilterInStock(t *testing.T) {
	got := Filter{Quick: QuickInStock}.Apply(specProducts())
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestEmptyResultIsValid(t *testing.T) {
	got := Filter{Query: "no such product"}.Apply(specProducts())
	require.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestDefaultSortFloatsFeaturedPreservingOrder(t *testing.T) {
	products := []models.Product{
		{ID: "1", Title: "a", Price: 100, Categories: []string{"apparel"}},
		{ID: "2", Title: "b", Price: 100, Categories: []string{"featured"}},
		{ID: "3", Title: "c", Price: 100, Categories: []string{"apparel"}},
		{ID: "4", Title: "d", Price: 100, Categories: []string{"featured"}},
	}

	got := Filter{Sort: SortFeatured}.Apply(products)
	// Featured first, relative order inside each group preserved.
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(got))
}

func TestPriceSortsUseEffectivePrice(t *testing.T) {
	products := []models.Product{
		{ID: "1", Title: "cheap", Price: 100},
		{ID: "2", Title: "discounted", Price: 50, OriginalPrice: 500},
		{ID: "3", Title: "mid", Price: 300},
	}

	asc := Filter{Sort: SortPriceAsc}.Apply(products)
	assert.Equal(t, []string{"1", "3", "2"}, ids(asc))

	desc := Filter{Sort: SortPriceDesc}.Apply(products)
	assert.Equal(t, []string{"2", "3", "1"}, ids(desc))
}

func TestTitleSort(t *testing.T) {
	products := []models.Product{
		{ID: "1", Title: "Zebra Tee"},
		{ID: "2", Title: "Album"},
		{ID: "3", Title: "Mug"},
	}

	got := Filter{Sort: SortTitleAsc}.Apply(products)
	assert.Equal(t, []string{"2", "3", "1"}, ids(got))
}

func TestNewestSortComparesNumericIDs(t *testing.T) {
	products := []models.Product{
		{ID: "2", Title: "old"},
		{ID: "10", Title: "newest"},
		{ID: "9", Title: "newer"},
	}

	got := Filter{Sort: SortNewest}.Apply(products)
	assert.Equal(t, []string{"10", "9", "2"}, ids(got))
}

func TestStagesNarrowInOrder(t *testing.T) {
	products := []models.Product{
		{ID: "1", Title: "Tour Tee", Price: 2000, Categories: []string{"apparel"}, InStock: true},
		{ID: "2", Title: "Tour Poster", Price: 1500, OriginalPrice: 2500, Categories: []string{"accessories"}, InStock: true},
		{ID: "3", Title: "Tour Mug", Price: 9000, OriginalPrice: 9900, Categories: []string{"accessories"}, InStock: false},
	}

	got := Filter{
		Query:      "tour",
		Categories: []string{"accessories"},
		MaxPrice:   5000,
		Quick:      QuickOnSale,
	}.Apply(products)

	assert.Equal(t, []string{"2"}, ids(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	products := specProducts()
	_ = Filter{Quick: QuickOnSale, Sort: SortPriceDesc}.Apply(products)

	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "2", products[1].ID)
}
