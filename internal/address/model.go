package address

import (
	"github.com/google/uuid"
)

type Address struct {
	ID     uuid.UUID
	UserID uint

	Label     string
	Recipient string
	Phone     string

	Street    string
	Apartment *string

	City     string
	Province string
	Postal   string
	Country  string

	IsDefault bool
	IsActive  bool
}

type CreateAddressInput struct {
	Label        string
	Recipient    string
	Phone        string
	Street       string
	Apartment    *string
	City         string
	Province     string
	PostalCode   string
	Country      string
	SetAsDefault bool
}

type UpdateAddressInput struct {
	AddressID    string
	Label        string
	Recipient    string
	Phone        string
	Street       string
	Apartment    *string
	City         string
	Province     string
	PostalCode   string
	Country      string
	SetAsDefault bool
}
