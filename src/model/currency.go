package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var ErrInvalidCurrency = errors.New("invalid currency")

// Currency is the closed set of currencies a portfolio can be held in.
type Currency string

const (
	GBP Currency = "GBP"
	USD Currency = "USD"
	EUR Currency = "EUR"
	INR Currency = "INR"
)

// Currencies lists every supported currency.
var Currencies = []Currency{GBP, USD, EUR, INR}

// Valid reports whether c is one of the supported currencies. The check is
// exact: "gbp" is not valid.
func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCurrency accepts a currency code in any letter case.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
	return c, nil
}

func (c *Currency) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCurrency, data)
	}
	parsed, err := ParseCurrency(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Fraction returns the number of minor-unit digits of c (2 for all supported currencies).
func (c Currency) Fraction() int {
	// money.New never returns a nil currency for registered codes.
	return money.New(0, string(c)).Currency().Fraction
}

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(-math.MaxInt64)
)

// Format renders a in the currency's conventional form, e.g. "£1,250.75".
func (c Currency) Format(a Amount) string {
	cur := money.New(0, string(c)).Currency()
	minor := a.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThan(maxMinorUnits) || minor.LessThan(minMinorUnits) {
		return formatWide(cur, a)
	}
	return cur.Formatter().Format(minor.IntPart())
}

// formatWide lays out amounts whose minor units overflow int64, which the
// go-money formatter cannot take, the same way that formatter does.
func formatWide(cur *money.Currency, a Amount) string {
	whole, frac, _ := strings.Cut(a.Abs().StringFixed(int32(cur.Fraction)), ".")
	if cur.Thousand != "" {
		for i := len(whole) - 3; i > 0; i -= 3 {
			whole = whole[:i] + cur.Thousand + whole[i:]
		}
	}
	digits := whole
	if frac != "" {
		digits += cur.Decimal + frac
	}
	out := strings.Replace(cur.Template, "1", digits, 1)
	out = strings.Replace(out, "$", cur.Grapheme, 1)
	if a.IsNegative() {
		return "-" + out
	}
	return out
}
