package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateReservationRequestValidate(t *testing.T) {
	t.Run("requires a stall", func(t *testing.T) {
		req := CreateReservationRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("notes too long", func(t *testing.T) {
		req := CreateReservationRequest{StallID: 3, Notes: strings.Repeat("x", 1001)}
		assert.Error(t, req.Validate())
	})

	t.Run("valid", func(t *testing.T) {
		req := CreateReservationRequest{StallID: 3, Notes: "near the entrance"}
		assert.NoError(t, req.Validate())
	})
}

func TestRejectReservationRequestValidate(t *testing.T) {
	t.Run("empty reason is fine", func(t *testing.T) {
		req := RejectReservationRequest{}
		assert.NoError(t, req.Validate())
	})

	t.Run("reason too long", func(t *testing.T) {
		req := RejectReservationRequest{Reason: strings.Repeat("x", 501)}
		assert.Error(t, req.Validate())
	})
}
