package model

// CurrentLiabilities are debts due within the year.
type CurrentLiabilities struct {
	CreditCards Amount `json:"creditCards"`
	TaxesOwed   Amount `json:"taxesOwed"`
	Other       Other  `json:"other"`
}

func (c CurrentLiabilities) Total() Amount {
	return sum(c.CreditCards, c.TaxesOwed, c.Other.Amount)
}

// LongTermLiabilities are debts repaid over several years.
type LongTermLiabilities struct {
	HomeMortgage         Amount `json:"homeMortgage"`
	HomeEquityLoan       Amount `json:"homeEquityLoan"`
	VacationHomeMortgage Amount `json:"vacationHomeMortgage"`
	CarLoans             Amount `json:"carLoans"`
	StudentLoans         Amount `json:"studentLoans"`
	LifeInsuranceLoans   Amount `json:"lifeInsuranceLoans"`
	Other                Other  `json:"other"`
}

func (l LongTermLiabilities) Total() Amount {
	return sum(l.HomeMortgage, l.HomeEquityLoan, l.VacationHomeMortgage,
		l.CarLoans, l.StudentLoans, l.LifeInsuranceLoans, l.Other.Amount)
}
