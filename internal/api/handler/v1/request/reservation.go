package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateReservationRequest struct {
	StallID uint   `json:"stall_id"`
	Notes   string `json:"notes,omitempty"`
}

func (req *CreateReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StallID, validation.Required),
		validation.Field(&req.Notes, validation.Length(0, 1000)),
	)
}

type RejectReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (req *RejectReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}
