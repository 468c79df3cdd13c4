package catalog

import (
	"sort"
	"strconv"
	"strings"

	"storefront-service/internal/models"
)

// featuredCategory marks products the default sort floats to the top.
const featuredCategory = "featured"

// QuickFilter is a named, predefined predicate.
type QuickFilter string

const (
	QuickAll      QuickFilter = "all"
	QuickInStock  QuickFilter = "in-stock"
	QuickOnSale   QuickFilter = "sale"
	QuickFeatured QuickFilter = "featured"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortTitleAsc  SortKey = "title-asc"
	SortNewest    SortKey = "newest"
)

// Filter is one listing request: each stage narrows the previous result, in
// the fixed order search -> categories -> price range -> quick filter -> sort.
// MaxPrice <= 0 means no upper bound. Never mutates the input slice.
type Filter struct {
	Query      string
	Categories []string
	MinPrice   int64
	MaxPrice   int64
	Quick      QuickFilter
	Sort       SortKey
}

// Apply evaluates the filter over the given product list and returns the
// filtered, sorted view. An empty result is a valid outcome, not an error.
func (f Filter) Apply(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		out = keep(out, func(p models.Product) bool {
			return matchesQuery(p, q)
		})
	}

	if len(f.Categories) > 0 {
		out = keep(out, func(p models.Product) bool {
			for _, want := range f.Categories {
				if p.HasCategory(want) {
					return true
				}
			}
			return false
		})
	}

	out = keep(out, func(p models.Product) bool {
		ep := p.EffectivePrice()
		if ep < f.MinPrice {
			return false
		}
		return f.MaxPrice <= 0 || ep <= f.MaxPrice
	})

	switch f.Quick {
	case QuickInStock:
		out = keep(out, func(p models.Product) bool { return p.InStock })
	case QuickOnSale:
		out = keep(out, func(p models.Product) bool { return p.OnSale() })
	case QuickFeatured:
		out = keep(out, func(p models.Product) bool { return p.HasCategory(featuredCategory) })
	}

	sortProducts(out, f.Sort)
	return out
}

func matchesQuery(p models.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, c := range p.Categories {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func keep(products []models.Product, pred func(models.Product) bool) []models.Product {
	filtered := products[:0]
	for _, p := range products {
		if pred(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// sortProducts orders the slice in place. All sorts are stable; the default
// key only floats featured products up and otherwise preserves catalog order.
func sortProducts(products []models.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() < products[j].EffectivePrice()
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() > products[j].EffectivePrice()
		})
	case SortTitleAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Title < products[j].Title
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return newerID(products[i].ID, products[j].ID)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].HasCategory(featuredCategory) && !products[j].HasCategory(featuredCategory)
		})
	}
}

// newerID treats the product id as a proxy for newness: numeric ids compare
// numerically, anything else falls back to a string compare.
func newerID(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai > bi
	}
	return a > b
}
