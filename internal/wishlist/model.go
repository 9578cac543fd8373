package wishlist

import "time"

type Entry struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	ProductID string    `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`

	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	ProductImage *string `json:"productImage,omitempty"`
}
