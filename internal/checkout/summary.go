package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"storefront-service/config"
	"storefront-service/internal/models"
)

// ComposeSummary builds the itemized order summary from the cart lines at
// submit time. Tax is a flat percentage of the subtotal, shipping a flat rate.
func ComposeSummary(ref string, shipping models.ShippingInfo, lines []models.CartLine, cfg config.CheckoutConfig) models.OrderSummary {
	orderLines := make([]models.OrderLine, 0, len(lines))
	var subtotal int64
	for _, l := range lines {
		orderLines = append(orderLines, models.OrderLine{
			ProductID: l.ID,
			Title:     l.Title,
			Quantity:  l.CartQuantity,
			UnitPrice: l.Price,
			LineTotal: l.LineTotal(),
		})
		subtotal += l.LineTotal()
	}

	tax := subtotal * cfg.TaxRatePercent / 100

	return models.OrderSummary{
		Reference: ref,
		Shipping:  shipping,
		Lines:     orderLines,
		Subtotal:  subtotal,
		ShipCost:  cfg.ShippingFlatCents,
		Tax:       tax,
		Total:     subtotal + cfg.ShippingFlatCents + tax,
	}
}

// FormatMessage renders the summary as the human-readable text the messaging
// handoff pre-fills.
func FormatMessage(s models.OrderSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New order %s\n\n", s.Reference)
	fmt.Fprintf(&b, "Customer: %s %s\n", s.Shipping.FirstName, s.Shipping.LastName)
	fmt.Fprintf(&b, "Email: %s\n", s.Shipping.Email)
	fmt.Fprintf(&b, "Phone: %s\n", s.Shipping.Phone)
	fmt.Fprintf(&b, "Ship to: %s, %s, %s %s, %s\n\n",
		s.Shipping.Address, s.Shipping.City, s.Shipping.State, s.Shipping.ZipCode, s.Shipping.Country)

	b.WriteString("Items:\n")
	for _, l := range s.Lines {
		fmt.Fprintf(&b, "- %s x%d @ %s = %s\n",
			l.Title, l.Quantity, FormatCents(l.UnitPrice), FormatCents(l.LineTotal))
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", FormatCents(s.Subtotal))
	fmt.Fprintf(&b, "Shipping: %s\n", FormatCents(s.ShipCost))
	fmt.Fprintf(&b, "Tax: %s\n", FormatCents(s.Tax))
	fmt.Fprintf(&b, "Total: %s\n", FormatCents(s.Total))

	return b.String()
}

// HandoffURL builds the wa.me deep link carrying the URL-encoded pre-filled
// message. Opening it is the caller's (client's) concern; best-effort.
func HandoffURL(number, message string) string {
	v := url.Values{}
	v.Set("text", message)
	return fmt.Sprintf("https://wa.me/%s?%s", number, v.Encode())
}

// FormatCents renders an amount in cents as a dollar string.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
