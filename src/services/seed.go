package services

import (
	"fmt"

	"github.com/username/networth/src/logger"
	"github.com/username/networth/src/model"
	"github.com/username/networth/src/store"
)

const (
	DefaultUserEmail = "john.doe@gmail.com"
)

// DefaultPortfolio is the demonstration portfolio attached to the seeded user.
func DefaultPortfolio() model.Portfolio {
	a := model.NewAmount
	p, err := model.NewPortfolio(model.GBP,
		model.CashAssets{
			Checking: a(1), Savings: a(2), MoneyMarket: a(3), SavingsBonds: a(4),
			CertificatesOfDeposit: a(5), LifeInsuranceCashValue: a(6),
			Other: model.Other{Title: "Test", Amount: a(7)},
		},
		model.InvestedAssets{
			Pensions: a(1.5), OtherTax: model.Other{Title: "TestInvest", Amount: a(2.5)},
			ISAs: a(3.5), Brokerage: a(4.5), Stocks: a(5.5), Bonds: a(6.5), MutualFunds: a(7.5),
			ETFs: a(8.5), Annuities: a(9.5), InvestmentProperty: a(10.5), BusinessInterests: a(11.5),
			Cryptocurrency: a(12.5), PrivateEquity: a(13.5), Commodities: a(14.5), PremiumBonds: a(15.5),
			OtherBusiness: model.Other{Title: "TestInvest", Amount: a(16.5)},
		},
		model.UseAssets{
			PrincipalHome: a(10), VacationHome: a(20), Vehicles: a(30), HomeFurnishings: a(40),
			ArtAndCollectibles: a(50), Jewelry: a(60),
			Other: model.Other{Title: "TestUse", Amount: a(70)},
		},
		model.CurrentLiabilities{
			CreditCards: a(0), TaxesOwed: a(111.1),
			Other: model.Other{Title: "TestCurrent", Amount: a(21.3)},
		},
		model.LongTermLiabilities{
			HomeMortgage: a(10), HomeEquityLoan: a(20), VacationHomeMortgage: a(30), CarLoans: a(40),
			StudentLoans: a(50), LifeInsuranceLoans: a(60),
			Other: model.Other{Amount: a(70)},
		},
	)
	if err != nil {
		// GBP is always valid.
		panic(err)
	}
	return p
}

// SeedDefaultUser registers John Doe with DefaultPortfolio. Only used on a
// first run without a snapshot, and only when enabled in the configuration.
func SeedDefaultUser(s *store.Store) error {
	if _, err := s.AddUser("John", "Doe", 29, DefaultUserEmail); err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}
	if err := s.UpdatePortfolio(DefaultUserEmail, DefaultPortfolio()); err != nil {
		return fmt.Errorf("seed default portfolio: %w", err)
	}
	logger.L.Info("Seeded default user", "email", DefaultUserEmail)
	return nil
}
