package domain

import "fmt"

// Currency is the closed set of currencies the pricing engine understands.
// XOF is the reference/settlement currency; every stored exchange rate is
// quoted against it.
type Currency string

const (
	CurrencyXOF Currency = "XOF"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// ReferenceCurrency is the currency all exchange rates are quoted against.
const ReferenceCurrency = CurrencyXOF

// ParseCurrency validates a currency code against the supported set.
func ParseCurrency(code string) (Currency, error) {
	switch Currency(code) {
	case CurrencyXOF, CurrencyEUR, CurrencyUSD:
		return Currency(code), nil
	default:
		return "", fmt.Errorf("unsupported currency code '%s'", code)
	}
}

// IsValid reports whether the currency is one of the supported codes.
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyXOF, CurrencyEUR, CurrencyUSD:
		return true
	}
	return false
}

// IsReference reports whether the currency is the reference currency.
func (c Currency) IsReference() bool {
	return c == ReferenceCurrency
}

// SupportedCurrencies returns the full supported set.
func SupportedCurrencies() []Currency {
	return []Currency{CurrencyXOF, CurrencyEUR, CurrencyUSD}
}
