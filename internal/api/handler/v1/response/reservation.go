package response

import "github.com/bookfairlk/stall-reservation-api/internal/domain"

// ReservationResponse wraps a reservation mutation result. EmailSent
// reports the best-effort notification outcome; a false value is a
// warning, never a failure.
type ReservationResponse struct {
	Message     string             `json:"message"`
	Reservation domain.Reservation `json:"reservation"`
	EmailSent   *bool              `json:"email_sent,omitempty"`
}

type ReservationQRResponse struct {
	QRData    string `json:"qr_data"`
	QRCode    string `json:"qr_code"`
	StallName string `json:"stall_name"`
}
