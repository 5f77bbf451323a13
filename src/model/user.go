package model

import "github.com/google/uuid"

// User is a registry entry. Email is its natural key.
type User struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Age       int        `json:"age"`
	Email     string     `json:"email"`
	Portfolio *Portfolio `json:"portfolio"`
}

// NewUser creates a user with a fresh random ID and no portfolio.
func NewUser(firstName, lastName string, age int, email string) *User {
	return &User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Age:       age,
		Email:     email,
	}
}

// NetWorth returns the portfolio's net worth, or false when no portfolio is attached.
func (u *User) NetWorth() (Amount, bool) {
	if u.Portfolio == nil {
		return Amount{}, false
	}
	return u.Portfolio.NetWorth(), true
}

// Clone returns a copy of u that shares no mutable state with it.
func (u *User) Clone() User {
	c := *u
	if u.Portfolio != nil {
		p := *u.Portfolio
		c.Portfolio = &p
	}
	return c
}
