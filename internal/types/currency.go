package types

import "strings"

// DefaultCurrency is the label used when a document does not carry one
const DefaultCurrency = "USD ($)"

// CURRENCY_CODES_SYMBOLS is a map of 3 digit ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"aud": "AU$",
	"cad": "CA$",
	"chf": "CHF",
	"jpy": "¥",
	"inr": "₹",
	"zar": "R",
}

// GetCurrencySymbol resolves the symbol for either an ISO code ("usd") or a
// display label ("EUR (€)"). Unknown values are returned unchanged.
func GetCurrencySymbol(currency string) string {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	if open := strings.Index(currency, "("); open >= 0 {
		if end := strings.Index(currency[open:], ")"); end > 1 {
			return currency[open+1 : open+end]
		}
	}
	if symbol, ok := CURRENCY_CODES_SYMBOLS[strings.ToLower(currency)]; ok {
		return symbol
	}
	return currency
}
