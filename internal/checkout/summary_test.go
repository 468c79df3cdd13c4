package checkout

import (
	"net/url"
	"strings"
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeSummaryTotals(t *testing.T) {
	lines := []models.CartLine{
		{Product: models.Product{ID: "1", Title: "Tee", Price: 2999}, CartQuantity: 2},
		{Product: models.Product{ID: "2", Title: "CD", Price: 1499}, CartQuantity: 1},
	}

	s := ComposeSummary("TA-12345678", validShipping(), lines, testConfig())

	require.Len(t, s.Lines, 2)
	assert.Equal(t, int64(5998), s.Lines[0].LineTotal)
	assert.Equal(t, int64(7497), s.Subtotal)
	assert.Equal(t, int64(999), s.ShipCost)
	assert.Equal(t, int64(599), s.Tax) // 8% of 7497, truncated
	assert.Equal(t, int64(9095), s.Total)
}

func TestFormatMessageIsItemized(t *testing.T) {
	lines := []models.CartLine{
		{Product: models.Product{ID: "1", Title: "Tour Poster", Price: 1799}, CartQuantity: 2},
	}
	s := ComposeSummary("TA-12345678", validShipping(), lines, testConfig())

	msg := FormatMessage(s)
	assert.Contains(t, msg, "New order TA-12345678")
	assert.Contains(t, msg, "Customer: Hank Woodall")
	assert.Contains(t, msg, "Tour Poster x2 @ $17.99 = $35.98")
	assert.Contains(t, msg, "Total: $48.84") // 3598 + 999 + 287
}

func TestHandoffURLEncodesMessage(t *testing.T) {
	link := HandoffURL("15551234567", "Order TA-1 total $10.00\nThanks")

	require.True(t, strings.HasPrefix(link, "https://wa.me/15551234567?"))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Order TA-1 total $10.00\nThanks", parsed.Query().Get("text"))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCents(0))
	assert.Equal(t, "$0.05", FormatCents(5))
	assert.Equal(t, "$12.34", FormatCents(1234))
	assert.Equal(t, "-$1.50", FormatCents(-150))
}

func TestNewReferenceShape(t *testing.T) {
	ref := NewReference("TA")

	require.True(t, strings.HasPrefix(ref, "TA-"))
	assert.Len(t, strings.TrimPrefix(ref, "TA-"), 8)
}
