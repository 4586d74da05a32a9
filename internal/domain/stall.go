package domain

import "time"

const (
	StallSizeSmall  = "small"
	StallSizeMedium = "medium"
	StallSizeLarge  = "large"
)

// Stall is a physical booth on the fair floor. Stalls are created by
// staff and never deleted while reservations reference them.
type Stall struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Size        string    `json:"size"`
	LocationX   float64   `json:"location_x"`
	LocationY   float64   `json:"location_y"`
	Dimensions  string    `json:"dimensions,omitempty"`
	Price       float64   `json:"price"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

func IsValidStallSize(size string) bool {
	switch size {
	case StallSizeSmall, StallSizeMedium, StallSizeLarge:
		return true
	}

	return false
}
