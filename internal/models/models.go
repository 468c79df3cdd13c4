package models

// Dimensions are physical product dimensions in inches. Fixture-only; not
// stored in Postgres.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Product is an immutable catalog entry. Prices are in cents. Catalog data is
// defined at load time and never mutated afterwards.
type Product struct {
	ID              string      `json:"id" db:"id"`
	Title           string      `json:"title" db:"title"`
	Description     string      `json:"description" db:"description"`
	FullDescription string      `json:"full_description,omitempty" db:"full_description"`
	Price           int64       `json:"price" db:"price"`
	OriginalPrice   int64       `json:"original_price,omitempty" db:"original_price"`
	Categories      []string    `json:"categories"`
	Images          []string    `json:"images,omitempty"`
	FeaturedImage   string      `json:"featured_image" db:"featured_image"`
	Quantity        int         `json:"quantity" db:"quantity"`
	InStock         bool        `json:"in_stock" db:"in_stock"`
	SKU             string      `json:"sku" db:"sku"`
	Tags            []string    `json:"tags,omitempty"`
	Weight          float64     `json:"weight,omitempty" db:"weight"`
	Dimensions      *Dimensions `json:"dimensions,omitempty"`
}

// OnSale reports whether the product carries a pre-discount price.
func (p Product) OnSale() bool {
	return p.OriginalPrice > 0
}

// EffectivePrice is the original price when the product is discounted,
// otherwise the unit price. Used for range filtering and price sorts.
func (p Product) EffectivePrice() int64 {
	if p.OriginalPrice > 0 {
		return p.OriginalPrice
	}
	return p.Price
}

// HasCategory reports whether the product is tagged with the given category.
func (p Product) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Category is a named product grouping shown as a store tab.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CartLine is one product-plus-quantity entry in a shopper's basket. The cart
// quantity is independent of the catalog stock quantity.
type CartLine struct {
	Product
	CartQuantity int `json:"cart_quantity"`
}

// LineTotal is unit price times cart quantity, using the line's current price.
func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.CartQuantity)
}

// ShippingInfo is the customer contact and delivery address collected by the
// first checkout step.
type ShippingInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

// OrderLine is an itemized summary row.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

// OrderSummary is the human-readable order composed when checkout submits.
// Amounts are in cents.
type OrderSummary struct {
	Reference string       `json:"reference"`
	Shipping  ShippingInfo `json:"shipping"`
	Lines     []OrderLine  `json:"lines"`
	Subtotal  int64        `json:"subtotal"`
	ShipCost  int64        `json:"shipping_cost"`
	Tax       int64        `json:"tax"`
	Total     int64        `json:"total"`
}

// OrderConfirmation is what the shopper sees after submitting: the summary
// plus the pre-filled messaging deep link the order is handed off through.
type OrderConfirmation struct {
	Summary    OrderSummary `json:"summary"`
	HandoffURL string       `json:"handoff_url"`
}
