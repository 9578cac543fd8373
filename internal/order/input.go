package order

import "strings"

// ItemInput is a requested line item as sent by the client. The product id
// may arrive under any of three aliased fields; ResolveProductID applies a
// single precedence so validation and snapshot building can never disagree
// on which id was checked.
type ItemInput struct {
	ProductID    string `json:"productId"`
	LegacyID     string `json:"_id"`
	AltID        string `json:"id"`
	Name         string `json:"name"`
	Price        Amount `json:"price"`
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selectedSize"`
	Image        string `json:"image"`
}

// ResolveProductID returns the first non-empty id among productId, _id, id.
func (i ItemInput) ResolveProductID() string {
	for _, id := range []string{i.ProductID, i.LegacyID, i.AltID} {
		if strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

// DisplayName is the item name used in validation messages.
func (i ItemInput) DisplayName() string {
	if strings.TrimSpace(i.Name) == "" {
		return "unknown"
	}
	return i.Name
}

type PricingInput struct {
	Subtotal Amount `json:"subtotal"`
	Shipping Amount `json:"shipping"`
	Tax      Amount `json:"tax"`
	Discount Amount `json:"discount"`
	Total    Amount `json:"total"`
}

type PaymentInput struct {
	Method         string `json:"method"`
	CardNumber     string `json:"cardNumber"`
	CardLast4      string `json:"cardLast4"`
	CardholderName string `json:"cardholderName"`
}

// Last4 prefers an explicit last-4 field and otherwise derives it from the
// card number, which is never stored.
func (p PaymentInput) Last4() string {
	if p.CardLast4 != "" {
		return p.CardLast4
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, p.CardNumber)
	if len(digits) >= 4 {
		return digits[len(digits)-4:]
	}
	return ""
}

type PlaceOrderInput struct {
	CustomerInfo   *CustomerInfo `json:"customerInfo"`
	Items          []ItemInput   `json:"items"`
	PaymentInfo    *PaymentInput `json:"paymentInfo"`
	ShippingOption string        `json:"shippingOption"`
	Pricing        *PricingInput `json:"pricing"`
	PromoCode      string        `json:"promoCode"`

	UserID         *uint  `json:"-"`
	IdempotencyKey string `json:"-"`
}

// missingSections lists the absent top-level sections, checked before any
// transaction is opened.
func (in PlaceOrderInput) missingSections() []string {
	var missing []string
	if in.CustomerInfo == nil {
		missing = append(missing, "customerInfo")
	}
	if len(in.Items) == 0 {
		missing = append(missing, "items")
	}
	if in.PaymentInfo == nil {
		missing = append(missing, "paymentInfo")
	}
	if strings.TrimSpace(in.ShippingOption) == "" {
		missing = append(missing, "shippingOption")
	}
	if in.Pricing == nil {
		missing = append(missing, "pricing")
	}
	return missing
}
