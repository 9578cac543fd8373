package product

import "time"

// SizeVariant is an independently stocked volume option of a product,
// e.g. 50ml. Size values are unique within a product.
type SizeVariant struct {
	Size      string  `json:"size"`
	Stock     int     `json:"stock"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Brand       string        `json:"brand"`
	Description *string       `json:"description,omitempty"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	IsActive    bool          `json:"isActive"`
	ImageURL    *string       `json:"imageUrl,omitempty"`
	CategoryID  *string       `json:"categoryId,omitempty"`
	Sizes       []SizeVariant `json:"sizes,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Size returns the variant matching the given size label, if any.
func (p *Product) Size(size string) *SizeVariant {
	for i := range p.Sizes {
		if p.Sizes[i].Size == size {
			return &p.Sizes[i]
		}
	}
	return nil
}

type ListOptions struct {
	CategoryID *string
	Search     *string
	OnlyActive bool
	Limit      int32
	Page       int32
}

type CreateParams struct {
	Name        string        `json:"name"`
	Brand       string        `json:"brand"`
	Description *string       `json:"description"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	ImageURL    *string       `json:"imageUrl"`
	CategoryID  *string       `json:"categoryId"`
	Sizes       []SizeVariant `json:"sizes"`
}

type UpdateParams struct {
	Name        *string       `json:"name"`
	Brand       *string       `json:"brand"`
	Description *string       `json:"description"`
	Price       *float64      `json:"price"`
	Stock       *int          `json:"stock"`
	IsActive    *bool         `json:"isActive"`
	ImageURL    *string       `json:"imageUrl"`
	CategoryID  *string       `json:"categoryId"`
	Sizes       []SizeVariant `json:"sizes"`
}
