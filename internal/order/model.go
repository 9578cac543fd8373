package order

import (
	"bytes"
	"strconv"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s belongs to the status vocabulary.
// Transitions themselves are admin-driven and unconstrained.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Amount is a decimal amount that accepts both JSON numbers and numeric
// strings, since clients send pricing fields either way.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

type CustomerInfo struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentInfo keeps only non-sensitive payment metadata. Full card numbers
// are stripped before the order snapshot is persisted.
type PaymentInfo struct {
	Method         string `json:"method"`
	CardLast4      string `json:"cardLast4"`
	CardholderName string `json:"cardholderName"`
}

type Pricing struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Item is one line of the immutable order snapshot, decoupled from the
// product catalog so historical orders survive later edits.
type Item struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	SelectedSize string  `json:"selectedSize,omitempty"`
	Image        string  `json:"image,omitempty"`
}

type Order struct {
	ID             uint         `json:"id"`
	OrderNumber    string       `json:"orderNumber"`
	UserID         *uint        `json:"userId,omitempty"`
	Status         Status       `json:"status"`
	Items          []Item       `json:"items"`
	CustomerInfo   CustomerInfo `json:"customerInfo"`
	PaymentInfo    PaymentInfo  `json:"paymentInfo"`
	ShippingOption string       `json:"shippingOption"`
	Pricing        Pricing      `json:"pricing"`
	PromoCode      string       `json:"promoCode,omitempty"`
	IdempotencyKey *string      `json:"-"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Confirmation is what the caller receives after a successful commit.
type Confirmation struct {
	OrderNumber string    `json:"orderNumber"`
	Status      Status    `json:"status"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`

	// Replayed marks an idempotent replay of a previously placed order.
	Replayed bool `json:"-"`
}

type StatusStat struct {
	Status  Status  `json:"status"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DayStat struct {
	Day     time.Time `json:"day"`
	Count   int64     `json:"count"`
	Revenue float64   `json:"revenue"`
}

type Stats struct {
	ByStatus []StatusStat `json:"byStatus"`
	ByDay    []DayStat    `json:"byDay,omitempty"`
}

type ListFilter struct {
	Status   *Status
	Search   *string
	Email    *string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int32
	Page     int32
}
