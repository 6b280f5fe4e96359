package domain

import "time"

// Product is a shop catalog item.
type Product struct {
	ID          string
	Label       string
	Description string
	Price       float64
	Image       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
