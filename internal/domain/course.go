package domain

import "time"

// Course is a catalog entry gated by a minimum subscription tier.
type Course struct {
	ID          string
	Title       string
	Description string
	VideoURL    string
	Level       Tier
	Category    string
	Duration    int // minutes
	Instructor  string
	Thumbnail   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
