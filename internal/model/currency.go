package model

import "strings"

// Currency is an entry in the static currency reference list.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Currencies is the supported currency list. The first entry is the default.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
}

// DefaultCurrency returns the first entry of Currencies.
func DefaultCurrency() Currency { return Currencies[0] }

// LookupCurrency resolves code against Currencies. Unknown or empty codes
// resolve to the default currency.
func LookupCurrency(code string) Currency {
	if c, ok := FindCurrency(code); ok {
		return c
	}
	return DefaultCurrency()
}

// FindCurrency reports whether code names a supported currency.
func FindCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// NormalizeCurrencyCode upper-cases and trims user input.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
