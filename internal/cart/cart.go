package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"storefront-service/internal/models"
)

// ErrInvalidQuantity is returned when AddItem is called with a non-positive
// quantity.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// snapshotVersion guards the persisted format. Snapshots with an unknown
// version are treated as malformed and discarded.
const snapshotVersion = 1

// Cart is the shopper's basket: an ordered collection of lines, at most one
// per product id. Totals are always derived from the lines, never stored.
// Cart is not safe for concurrent use; Service serializes access and hands
// out detached copies to readers.
type Cart struct {
	lines []models.CartLine
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges quantity into the existing line for the product, or appends
// a new line. The store enforces no stock ceiling; clamping against catalog
// stock is a presentation-layer policy.
func (c *Cart) AddItem(product models.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	for i := range c.lines {
		if c.lines[i].ID == product.ID {
			c.lines[i].CartQuantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, models.CartLine{
		Product:      product,
		CartQuantity: quantity,
	})
	return nil
}

// RemoveItem removes the line for the product id. Removing an absent line is
// a no-op, not an error.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.lines {
		if c.lines[i].ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line's quantity to exactly quantity. A non-positive
// quantity removes the line; a missing line is a no-op.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}

	for i := range c.lines {
		if c.lines[i].ID == productID {
			c.lines[i].CartQuantity = quantity
			return
		}
	}
}

// Clear empties all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalItemCount returns the sum of quantities across all lines, not the
// number of distinct lines.
func (c *Cart) TotalItemCount() int {
	var total int
	for _, l := range c.lines {
		total += l.CartQuantity
	}
	return total
}

// TotalPrice returns the sum of unit price times quantity over all lines,
// in cents, using each line's current price.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.LineTotal()
	}
	return total
}

// snapshot is the persisted cart shape.
type snapshot struct {
	SchemaVersion int               `json:"schema_version"`
	Lines         []models.CartLine `json:"lines"`
}

// MarshalSnapshot serializes the cart for the snapshot store.
func (c *Cart) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(snapshot{
		SchemaVersion: snapshotVersion,
		Lines:         c.lines,
	})
}

// UnmarshalSnapshot replaces the cart contents with a previously saved
// snapshot. Malformed data or an unknown schema version is an error; callers
// fall back to an empty cart.
func (c *Cart) UnmarshalSnapshot(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse cart snapshot: %w", err)
	}
	if snap.SchemaVersion != snapshotVersion {
		return fmt.Errorf("unsupported cart snapshot version: %d", snap.SchemaVersion)
	}
	c.lines = snap.Lines
	return nil
}
