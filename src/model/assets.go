package model

// CashAssets are balances that can be spent immediately.
type CashAssets struct {
	Checking               Amount `json:"checking"`
	Savings                Amount `json:"savings"`
	MoneyMarket            Amount `json:"moneyMarket"`
	SavingsBonds           Amount `json:"savingsBonds"`
	CertificatesOfDeposit  Amount `json:"certificatesOfDeposit"`
	LifeInsuranceCashValue Amount `json:"lifeInsuranceCashValue"`
	Other                  Other  `json:"other"`
}

func (c CashAssets) Total() Amount {
	return sum(c.Checking, c.Savings, c.MoneyMarket, c.SavingsBonds,
		c.CertificatesOfDeposit, c.LifeInsuranceCashValue, c.Other.Amount)
}

// InvestedAssets are holdings kept for growth or income.
type InvestedAssets struct {
	Pensions           Amount `json:"pensions"`
	ISAs               Amount `json:"isas"`
	Brokerage          Amount `json:"brokerage"`
	Stocks             Amount `json:"stocks"`
	Bonds              Amount `json:"bonds"`
	MutualFunds        Amount `json:"mutualFunds"`
	ETFs               Amount `json:"etfs"`
	Annuities          Amount `json:"annuities"`
	InvestmentProperty Amount `json:"investmentProperty"`
	BusinessInterests  Amount `json:"businessInterests"`
	Cryptocurrency     Amount `json:"cryptocurrency"`
	PrivateEquity      Amount `json:"privateEquity"`
	Commodities        Amount `json:"commodities"`
	PremiumBonds       Amount `json:"premiumBonds"`

	// OtherTax holds other tax-advantaged investments.
	OtherTax Other `json:"otherTax"`
	// OtherBusiness holds other business or non-sheltered investments.
	OtherBusiness Other `json:"otherBusiness"`
}

func (i InvestedAssets) Total() Amount {
	return sum(i.Pensions, i.ISAs, i.Brokerage, i.Stocks, i.Bonds, i.MutualFunds,
		i.ETFs, i.Annuities, i.InvestmentProperty, i.BusinessInterests,
		i.Cryptocurrency, i.PrivateEquity, i.Commodities, i.PremiumBonds,
		i.OtherTax.Amount, i.OtherBusiness.Amount)
}

// UseAssets are possessions held for personal use.
type UseAssets struct {
	PrincipalHome      Amount `json:"principalHome"`
	VacationHome       Amount `json:"vacationHome"`
	Vehicles           Amount `json:"vehicles"`
	HomeFurnishings    Amount `json:"homeFurnishings"`
	ArtAndCollectibles Amount `json:"artAndCollectibles"`
	Jewelry            Amount `json:"jewelry"`
	Other              Other  `json:"other"`
}

func (u UseAssets) Total() Amount {
	return sum(u.PrincipalHome, u.VacationHome, u.Vehicles, u.HomeFurnishings,
		u.ArtAndCollectibles, u.Jewelry, u.Other.Amount)
}
