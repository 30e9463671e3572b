package transformers

import (
	"regexp"
	"strings"

	"casavista-listings/internal/models"
)

type addressTransformer struct{}

func NewAddressTransformer() AddressTransformer {
	return &addressTransformer{}
}

var nonDigits = regexp.MustCompile(`\D`)

func (t *addressTransformer) NormalizeCity(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// NormalizePostalCode keeps digits only, so stored codes never carry
// separators regardless of how the caller formatted them.
func (t *addressTransformer) NormalizePostalCode(input string) string {
	return nonDigits.ReplaceAllString(input, "")
}

func (t *addressTransformer) ToEntity(req *models.AddressRequest) models.Address {
	addr := models.Address{
		Street:     strings.TrimSpace(req.Street),
		Number:     strings.TrimSpace(req.Number),
		City:       t.NormalizeCity(req.City),
		PostalCode: t.NormalizePostalCode(req.PostalCode),
		Country:    strings.TrimSpace(req.Country),
	}
	if addr.Country == "" {
		addr.Country = "Brazil"
	}
	return addr
}
