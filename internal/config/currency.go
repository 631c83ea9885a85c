package config

import "strings"

// Currency is a display currency offered by setup and settings.
type Currency struct {
	Symbol string
	Code   string
	Name   string
}

// Currencies lists the built-in currency choices.
var Currencies = []Currency{
	{Symbol: "$", Code: "USD", Name: "US Dollar"},
	{Symbol: "₹", Code: "INR", Name: "Indian Rupee"},
	{Symbol: "€", Code: "EUR", Name: "Euro"},
	{Symbol: "£", Code: "GBP", Name: "British Pound"},
}

// NormalizeCurrency maps an ISO code to its symbol. Unknown values are
// returned trimmed so custom labels still work; empty input becomes "$".
func NormalizeCurrency(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "$"
	}
	for _, c := range Currencies {
		if strings.EqualFold(s, c.Code) || s == c.Symbol {
			return c.Symbol
		}
	}
	return s
}
