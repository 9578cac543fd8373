package cart

import "time"

type Item struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"userId"`
	ProductID    string    `json:"productId"`
	SelectedSize string    `json:"selectedSize,omitempty"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Joined from the catalog for display.
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	ProductImage *string `json:"productImage,omitempty"`
}

type AddParams struct {
	UserID       uint
	ProductID    string
	SelectedSize string
	Quantity     int
}
