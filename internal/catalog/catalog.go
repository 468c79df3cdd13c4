package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-service/internal/models"
)

//go:embed fixtures/products.json
var productsJSON []byte

//go:embed fixtures/categories.json
var categoriesJSON []byte

// ErrNotFound is returned when a product id is not in the catalog.
var ErrNotFound = errors.New("product not found")

// fallbackMaxPrice is the price-range upper bound (in cents) used when the
// catalog is empty, so the range never degenerates to [0,0].
const fallbackMaxPrice int64 = 50000

// Catalog is the static product list. It is built once at startup and never
// mutated afterwards; all queries return copies.
type Catalog struct {
	products   []models.Product
	byID       map[string]models.Product
	categories []models.Category
}

// New builds a catalog from an already-loaded product list.
func New(products []models.Product, categories []models.Category) *Catalog {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{
		products:   products,
		byID:       byID,
		categories: categories,
	}
}

// LoadEmbedded builds the catalog from the fixtures compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	var products []models.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("failed to parse product fixtures: %w", err)
	}

	var categories []models.Category
	if err := json.Unmarshal(categoriesJSON, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse category fixtures: %w", err)
	}

	return New(products, categories), nil
}

// Products returns all catalog entries.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ProductByID retrieves a product by id.
func (c *Catalog) ProductByID(id string) (models.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// Categories returns the store category tabs.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Size returns the number of catalog entries.
func (c *Catalog) Size() int {
	return len(c.products)
}

// PriceBounds returns the [min, max] range (in cents) the price filter should
// offer, derived from the maximum effective price in the catalog.
func (c *Catalog) PriceBounds() (int64, int64) {
	if len(c.products) == 0 {
		return 0, fallbackMaxPrice
	}
	var max int64
	for _, p := range c.products {
		if ep := p.EffectivePrice(); ep > max {
			max = ep
		}
	}
	if max == 0 {
		max = fallbackMaxPrice
	}
	return 0, max
}
