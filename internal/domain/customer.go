package domain

import (
	"fmt"
	"time"
)

// Customer represents a registered customer account.
// Identity is stable for the lifetime of the account; email is unique.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	City      string
	Street    string
	Postcode  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name returns the customer's full name
func (c *Customer) Name() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}
