package domain

import "time"

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

// MaxConfirmedPerVendor caps how many confirmed reservations a single
// vendor may hold at the same time.
const MaxConfirmedPerVendor = 3

// Reservation is a vendor's claim on a stall. At most one reservation
// per stall may be pending or confirmed at any time, and a vendor may
// hold at most one active reservation per stall.
type Reservation struct {
	ID          uint       `json:"id"`
	VendorID    uint       `json:"vendor_id"`
	StallID     uint       `json:"stall_id"`
	Stall       *Stall     `json:"stall,omitempty"`
	Vendor      *Vendor    `json:"vendor,omitempty"`
	QRData      string     `json:"qr_data"`
	QRCode      string     `json:"qr_code,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsActive reports whether the reservation currently claims its stall.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// CanApprove reports whether the reservation may move to confirmed.
// Only pending reservations can be approved.
func (r *Reservation) CanApprove() bool {
	return r.Status == ReservationStatusPending
}

// CanReject reports whether the reservation may be rejected by staff.
func (r *Reservation) CanReject() bool {
	return r.Status == ReservationStatusPending
}

// CanCancel reports whether the reservation may move to cancelled.
// Cancelled is terminal; nothing ever re-enters pending.
func (r *Reservation) CanCancel() bool {
	return r.Status != ReservationStatusCancelled
}
