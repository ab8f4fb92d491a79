package currency

import "strings"

// Codes the price API can quote against.
var supported = map[string]struct{}{
	"USD": {},
	"EUR": {},
	"GBP": {},
	"CAD": {},
	"CHF": {},
	"AUD": {},
	"JPY": {},
}

// Normalize canonicalizes a user-supplied currency code, e.g. " eur " to
// "EUR".
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Supported reports whether the price API quotes the given currency.
func Supported(code string) bool {
	_, ok := supported[Normalize(code)]
	return ok
}
