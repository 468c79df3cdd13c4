package checkout

import (
	"regexp"
	"strings"

	"storefront-service/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// minPhoneDigits is the loosest useful bound; formatting varies too much to
// validate further without a phone library, which nothing in our stack has.
const minPhoneDigits = 7

// ShippingValidationError reports per-field problems so the form can render
// them inline.
type ShippingValidationError struct {
	Fields map[string]string
}

func (e *ShippingValidationError) Error() string {
	return "invalid shipping info"
}

// ValidateShipping checks required-field presence plus email and phone shape.
// Returns nil or a *ShippingValidationError.
func ValidateShipping(info models.ShippingInfo) error {
	fields := make(map[string]string)

	required := map[string]string{
		"first_name": info.FirstName,
		"last_name":  info.LastName,
		"email":      info.Email,
		"phone":      info.Phone,
		"address":    info.Address,
		"city":       info.City,
		"state":      info.State,
		"zip_code":   info.ZipCode,
		"country":    info.Country,
	}
	for name, val := range required {
		if strings.TrimSpace(val) == "" {
			fields[name] = "required"
		}
	}

	if _, ok := fields["email"]; !ok && !emailPattern.MatchString(info.Email) {
		fields["email"] = "invalid email address"
	}
	if _, ok := fields["phone"]; !ok && digitCount(info.Phone) < minPhoneDigits {
		fields["phone"] = "invalid phone number"
	}

	if len(fields) > 0 {
		return &ShippingValidationError{Fields: fields}
	}
	return nil
}

func digitCount(s string) int {
	var n int
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
