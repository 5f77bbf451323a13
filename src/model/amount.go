package model

import "github.com/shopspring/decimal"

// Amount is an exact monetary quantity in the portfolio's currency.
type Amount = decimal.Decimal

func init() {
	// Amounts travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// NewAmount converts a float literal into an Amount.
func NewAmount(v float64) Amount {
	return decimal.NewFromFloat(v)
}

// ParseAmount parses a decimal string such as "1250.75".
func ParseAmount(s string) (Amount, error) {
	return decimal.NewFromString(s)
}

func sum(values ...Amount) Amount {
	return decimal.Sum(decimal.Zero, values...)
}

// Other is the catch-all bucket trailing every category record.
type Other struct {
	Title  string `json:"title,omitempty"`
	Amount Amount `json:"amount"`
}
