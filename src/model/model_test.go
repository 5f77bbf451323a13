package model

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(v float64) Amount { return NewAmount(v) }

func sampleRecords() (CashAssets, InvestedAssets, UseAssets, CurrentLiabilities, LongTermLiabilities) {
	cash := CashAssets{
		Checking: amt(1), Savings: amt(2), MoneyMarket: amt(3), SavingsBonds: amt(4),
		CertificatesOfDeposit: amt(5), LifeInsuranceCashValue: amt(6),
		Other: Other{Title: "Test", Amount: amt(7)},
	}
	invested := InvestedAssets{
		Pensions: amt(1.5), OtherTax: Other{Title: "TestInvest", Amount: amt(2.5)},
		ISAs: amt(3.5), Brokerage: amt(4.5), Stocks: amt(5.5), Bonds: amt(6.5),
		MutualFunds: amt(7.5), ETFs: amt(8.5), Annuities: amt(9.5), InvestmentProperty: amt(10.5),
		BusinessInterests: amt(11.5), Cryptocurrency: amt(12.5), PrivateEquity: amt(13.5),
		Commodities: amt(14.5), PremiumBonds: amt(15.5),
		OtherBusiness: Other{Title: "TestInvest", Amount: amt(16.5)},
	}
	use := UseAssets{
		PrincipalHome: amt(10), VacationHome: amt(20), Vehicles: amt(30), HomeFurnishings: amt(40),
		ArtAndCollectibles: amt(50), Jewelry: amt(60), Other: Other{Title: "TestUse", Amount: amt(70)},
	}
	current := CurrentLiabilities{CreditCards: amt(0), TaxesOwed: amt(1.1), Other: Other{Title: "TestCurrent", Amount: amt(1.3)}}
	long := LongTermLiabilities{
		HomeMortgage: amt(10), HomeEquityLoan: amt(20), VacationHomeMortgage: amt(30), CarLoans: amt(40),
		StudentLoans: amt(50), LifeInsuranceLoans: amt(60), Other: Other{Amount: amt(70)},
	}
	return cash, invested, use, current, long
}

func assertAmount(t *testing.T, want string, got Amount) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestCategoryTotals(t *testing.T) {
	cash, invested, use, current, long := sampleRecords()

	assertAmount(t, "28", cash.Total())
	assertAmount(t, "280", use.Total())
	assertAmount(t, "144", invested.Total())
	assertAmount(t, "2.4", current.Total())
	assertAmount(t, "280", long.Total())
}

func TestZeroValueRecordsTotalZero(t *testing.T) {
	assert.True(t, CashAssets{}.Total().IsZero())
	assert.True(t, InvestedAssets{}.Total().IsZero())
	assert.True(t, UseAssets{}.Total().IsZero())
	assert.True(t, CurrentLiabilities{}.Total().IsZero())
	assert.True(t, LongTermLiabilities{}.Total().IsZero())
}

func TestNewPortfolioRejectsUnknownCurrency(t *testing.T) {
	cash, invested, use, current, long := sampleRecords()

	for _, c := range []Currency{"", "gbp", "JPY", "GBP "} {
		_, err := NewPortfolio(c, cash, invested, use, current, long)
		assert.ErrorIs(t, err, ErrInvalidCurrency, "currency %q", c)
	}
}

func TestNewPortfolioStampsCreationTime(t *testing.T) {
	cash, invested, use, current, long := sampleRecords()

	start := time.Now()
	p, err := NewPortfolio(GBP, cash, invested, use, current, long)
	end := time.Now()
	require.NoError(t, err)

	assert.Equal(t, GBP, p.Currency)
	assert.False(t, p.Timestamp.Before(start), "timestamp before construction")
	assert.False(t, p.Timestamp.After(end), "timestamp after construction")
}

func TestPortfolioTotals(t *testing.T) {
	cash, invested, use, current, long := sampleRecords()
	p, err := NewPortfolio(GBP, cash, invested, use, current, long)
	require.NoError(t, err)

	assertAmount(t, "452", p.TotalAssets())
	assertAmount(t, "282.4", p.TotalLiabilities())
	assertAmount(t, "169.6", p.NetWorth())

	assets := p.Assets()
	assertAmount(t, "28", assets.Cash)
	assertAmount(t, "280", assets.Use)
	assertAmount(t, "144", assets.Invested)
	assertAmount(t, "452", assets.Total)

	liabilities := p.Liabilities()
	assertAmount(t, "2.4", liabilities.Current)
	assertAmount(t, "280", liabilities.Long)
	assertAmount(t, "282.4", liabilities.Total)
}

func TestPortfolioIdentitiesHoldForRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randAmount := func() Amount { return decimal.New(rng.Int63n(10_000_000), -2) }

	for i := 0; i < 200; i++ {
		p := Portfolio{
			Currency: USD,
			Cash:     CashAssets{Checking: randAmount(), Savings: randAmount(), Other: Other{Amount: randAmount()}},
			Invested: InvestedAssets{Stocks: randAmount(), Bonds: randAmount(), OtherTax: Other{Amount: randAmount()}, OtherBusiness: Other{Amount: randAmount()}},
			Use:      UseAssets{PrincipalHome: randAmount(), Vehicles: randAmount()},
			CurrentLiabilities:  CurrentLiabilities{CreditCards: randAmount(), Other: Other{Amount: randAmount()}},
			LongTermLiabilities: LongTermLiabilities{HomeMortgage: randAmount(), StudentLoans: randAmount()},
		}

		assets := p.Cash.Total().Add(p.Invested.Total()).Add(p.Use.Total())
		liabilities := p.CurrentLiabilities.Total().Add(p.LongTermLiabilities.Total())
		require.True(t, assets.Equal(p.TotalAssets()))
		require.True(t, liabilities.Equal(p.TotalLiabilities()))
		require.True(t, assets.Sub(liabilities).Equal(p.NetWorth()))
	}
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" eur ")
	require.NoError(t, err)
	assert.Equal(t, EUR, c)

	_, err = ParseCurrency("BTC")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestCurrencyFormat(t *testing.T) {
	assert.Equal(t, 2, GBP.Fraction())
	assert.Equal(t, "£1,250.75", GBP.Format(decimal.RequireFromString("1250.75")))
	assert.Equal(t, "$700.00", USD.Format(amt(700)))
	assert.Equal(t, "-£12.50", GBP.Format(decimal.RequireFromString("-12.5")))
}

func TestCurrencyFormatBeyondInt64MinorUnits(t *testing.T) {
	huge := decimal.RequireFromString("100000000000000000")
	assert.Equal(t, "£100,000,000,000,000,000.00", GBP.Format(huge))
	assert.Equal(t, "-$100,000,000,000,000,000.25", USD.Format(huge.Add(decimal.RequireFromString("0.25")).Neg()))

	// The largest amount whose minor units still fit keeps the grouped form.
	edge := decimal.NewFromInt(math.MaxInt64).Shift(-2)
	assert.Equal(t, "£92,233,720,368,547,758.07", GBP.Format(edge))
}

func TestPortfolioJSONUsesCamelCaseAndNumbers(t *testing.T) {
	cash, invested, use, current, long := sampleRecords()
	p, err := NewPortfolio(INR, cash, invested, use, current, long)
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "INR", raw["currency"])
	assert.Contains(t, raw, "currentLiabilities")
	assert.Contains(t, raw, "longTermLiabilities")
	invest := raw["invested"].(map[string]any)
	assert.Equal(t, 1.5, invest["pensions"])
	assert.Equal(t, "TestInvest", invest["otherTax"].(map[string]any)["title"])

	var back Portfolio
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, p.NetWorth().Equal(back.NetWorth()))
	assert.True(t, p.Timestamp.Equal(back.Timestamp))
}

func TestPortfolioJSONRejectsUnknownCurrency(t *testing.T) {
	var p Portfolio
	err := json.Unmarshal([]byte(`{"currency":"JPY"}`), &p)
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	require.NoError(t, json.Unmarshal([]byte(`{"currency":"gbp","cash":{"checking":"12.5"}}`), &p))
	assert.Equal(t, GBP, p.Currency)
	assertAmount(t, "12.5", p.Cash.Checking)
}

func TestUserNetWorthAndClone(t *testing.T) {
	u := NewUser("John", "Doe", 29, "john.doe@gmail.com")
	assert.NotEqual(t, uuid.Nil, u.ID)

	_, ok := u.NetWorth()
	assert.False(t, ok, "no portfolio attached yet")

	cash, invested, use, current, long := sampleRecords()
	p, err := NewPortfolio(GBP, cash, invested, use, current, long)
	require.NoError(t, err)
	u.Portfolio = &p

	worth, ok := u.NetWorth()
	require.True(t, ok)
	assertAmount(t, "169.6", worth)

	c := u.Clone()
	c.FirstName = "Jane"
	c.Portfolio.Cash.Checking = amt(1_000_000)
	c.Portfolio.Currency = EUR

	assert.Equal(t, "John", u.FirstName)
	assert.Equal(t, GBP, u.Portfolio.Currency)
	assertAmount(t, "1", u.Portfolio.Cash.Checking)
	assert.NotSame(t, u.Portfolio, c.Portfolio)
}

func TestNewUserGeneratesUniqueIDs(t *testing.T) {
	a := NewUser("A", "A", 1, "a@example.com")
	b := NewUser("B", "B", 2, "b@example.com")
	assert.NotEqual(t, a.ID, b.ID)
}
