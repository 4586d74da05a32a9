package domain

import "time"

// Vendor is a registered business (publisher, bookseller, ...) that may
// reserve stalls at the fair.
type Vendor struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	BusinessName string    `json:"business_name"`
	BusinessType string    `json:"business_type"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	IsActive     bool      `json:"is_active"`
	Genres       []Genre   `json:"genres,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
