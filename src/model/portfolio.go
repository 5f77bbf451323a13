package model

import (
	"fmt"
	"time"
)

// Portfolio is a timestamped snapshot of one user's assets and liabilities in a single currency.
// Totals are recomputed from the records on every call.
type Portfolio struct {
	Currency            Currency            `json:"currency"`
	Timestamp           time.Time           `json:"timestamp"`
	Cash                CashAssets          `json:"cash"`
	Invested            InvestedAssets      `json:"invested"`
	Use                 UseAssets           `json:"use"`
	CurrentLiabilities  CurrentLiabilities  `json:"currentLiabilities"`
	LongTermLiabilities LongTermLiabilities `json:"longTermLiabilities"`
}

// NewPortfolio validates the currency and stamps the portfolio with the current time.
func NewPortfolio(currency Currency, cash CashAssets, invested InvestedAssets, use UseAssets,
	current CurrentLiabilities, long LongTermLiabilities) (Portfolio, error) {
	if !currency.Valid() {
		return Portfolio{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, string(currency))
	}
	return Portfolio{
		Currency:            currency,
		Timestamp:           time.Now().UTC(),
		Cash:                cash,
		Invested:            invested,
		Use:                 use,
		CurrentLiabilities:  current,
		LongTermLiabilities: long,
	}, nil
}

func (p Portfolio) TotalAssets() Amount {
	return sum(p.Cash.Total(), p.Invested.Total(), p.Use.Total())
}

func (p Portfolio) TotalLiabilities() Amount {
	return sum(p.CurrentLiabilities.Total(), p.LongTermLiabilities.Total())
}

func (p Portfolio) NetWorth() Amount {
	return p.TotalAssets().Sub(p.TotalLiabilities())
}

// AssetBreakdown is the per-category view of a portfolio's assets.
type AssetBreakdown struct {
	Cash     Amount `json:"cash"`
	Use      Amount `json:"use"`
	Invested Amount `json:"invested"`
	Total    Amount `json:"total"`
}

// LiabilityBreakdown is the per-category view of a portfolio's liabilities.
type LiabilityBreakdown struct {
	Current Amount `json:"current"`
	Long    Amount `json:"long"`
	Total   Amount `json:"total"`
}

func (p Portfolio) Assets() AssetBreakdown {
	return AssetBreakdown{
		Cash:     p.Cash.Total(),
		Use:      p.Use.Total(),
		Invested: p.Invested.Total(),
		Total:    p.TotalAssets(),
	}
}

func (p Portfolio) Liabilities() LiabilityBreakdown {
	return LiabilityBreakdown{
		Current: p.CurrentLiabilities.Total(),
		Long:    p.LongTermLiabilities.Total(),
		Total:   p.TotalLiabilities(),
	}
}
