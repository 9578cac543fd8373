package banner

import (
	"time"

	"github.com/google/uuid"
)

type Banner struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	LinkURL   *string   `json:"linkUrl,omitempty"`
	Position  int       `json:"position"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateBannerInput struct {
	Title    string  `json:"title"`
	ImageURL string  `json:"imageUrl"`
	LinkURL  *string `json:"linkUrl"`
	Position int     `json:"position"`
	Active   bool    `json:"active"`
}
