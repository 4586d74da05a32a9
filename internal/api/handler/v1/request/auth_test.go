package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignup() VendorSignupRequest {
	return VendorSignupRequest{
		Username:     "pagepress",
		Email:        "pp@example.com",
		Password:     "readmore1",
		BusinessName: "Page Press",
		BusinessType: "publisher",
	}
}

func TestVendorSignupRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validSignup()
		assert.NoError(t, req.Validate())
	})

	t.Run("missing email", func(t *testing.T) {
		req := validSignup()
		req.Email = ""
		assert.Error(t, req.Validate())
	})

	t.Run("malformed email", func(t *testing.T) {
		req := validSignup()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("password too short", func(t *testing.T) {
		req := validSignup()
		req.Password = "abc1"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without digits", func(t *testing.T) {
		req := validSignup()
		req.Password = "onlyletters"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without letters", func(t *testing.T) {
		req := validSignup()
		req.Password = "1234567890"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})
}

func TestEmployeeSignupRequestValidate(t *testing.T) {
	t.Run("unknown role", func(t *testing.T) {
		req := EmployeeSignupRequest{
			Username: "gatekeeper",
			Email:    "gate@fair.lk",
			Password: "opensesame1",
			FullName: "Gate Keeper",
			Role:     "superuser",
		}
		assert.Error(t, req.Validate())
	})

	t.Run("role defaults downstream when omitted", func(t *testing.T) {
		req := EmployeeSignupRequest{
			Username: "gatekeeper",
			Email:    "gate@fair.lk",
			Password: "opensesame1",
			FullName: "Gate Keeper",
		}
		assert.NoError(t, req.Validate())
	})
}

func TestChangePasswordRequestValidate(t *testing.T) {
	t.Run("weak new password", func(t *testing.T) {
		req := ChangePasswordRequest{OldPassword: "readmore1", NewPassword: "short"}
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("valid", func(t *testing.T) {
		req := ChangePasswordRequest{OldPassword: "readmore1", NewPassword: "readevenmore2"}
		assert.NoError(t, req.Validate())
	})
}
