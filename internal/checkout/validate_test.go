package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShippingAcceptsCompleteInfo(t *testing.T) {
	assert.NoError(t, ValidateShipping(validShipping()))
}

func TestValidateShippingRequiresAllFields(t *testing.T) {
	info := validShipping()
	info.Address = ""
	info.City = "   "

	err := ValidateShipping(info)
	var vErr *ShippingValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "required", vErr.Fields["address"])
	assert.Equal(t, "required", vErr.Fields["city"])
	assert.NotContains(t, vErr.Fields, "email")
}

func TestValidateShippingEmailShape(t *testing.T) {
	for _, bad := range []string{"plain", "a@b", "a b@c.com", "@c.com"} {
		info := validShipping()
		info.Email = bad

		err := ValidateShipping(info)
		var vErr *ShippingValidationError
		require.ErrorAs(t, err, &vErr, "email %q should be rejected", bad)
		assert.Contains(t, vErr.Fields, "email")
	}
}

func TestValidateShippingPhoneShape(t *testing.T) {
	info := validShipping()
	info.Phone = "call me"

	err := ValidateShipping(info)
	var vErr *ShippingValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "phone")

	// Formatting is tolerated as long as enough digits are present.
	info.Phone = "(615) 555-0142"
	assert.NoError(t, ValidateShipping(info))
}
