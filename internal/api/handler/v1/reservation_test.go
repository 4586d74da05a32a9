package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bookfairlk/stall-reservation-api/internal/api/middleware"
	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/service"
)

type mockReservationService struct {
	mock.Mock
}

func (m *mockReservationService) Request(_ context.Context, vendorID, stallID uint, notes string) (domain.Reservation, error) {
	args := m.Called(vendorID, stallID, notes)

	return args.Get(0).(domain.Reservation), args.Error(1)
}

func (m *mockReservationService) Approve(_ context.Context, reservationID uint) (domain.Reservation, bool, error) {
	args := m.Called(reservationID)

	return args.Get(0).(domain.Reservation), args.Bool(1), args.Error(2)
}

func (m *mockReservationService) Reject(_ context.Context, reservationID uint, reason string) (domain.Reservation, bool, error) {
	args := m.Called(reservationID, reason)

	return args.Get(0).(domain.Reservation), args.Bool(1), args.Error(2)
}

func (m *mockReservationService) Cancel(_ context.Context, reservationID uint, actorVendorID *uint) (domain.Reservation, bool, error) {
	args := m.Called(reservationID, actorVendorID)

	return args.Get(0).(domain.Reservation), args.Bool(1), args.Error(2)
}

func (m *mockReservationService) GetReservation(_ context.Context, reservationID uint, actorVendorID *uint) (domain.Reservation, error) {
	args := m.Called(reservationID, actorVendorID)

	return args.Get(0).(domain.Reservation), args.Error(1)
}

func (m *mockReservationService) ListVendorReservations(_ context.Context, vendorID uint) ([]domain.Reservation, error) {
	args := m.Called(vendorID)

	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *mockReservationService) ListReservations(_ context.Context, status string) ([]domain.Reservation, error) {
	args := m.Called(status)

	return args.Get(0).([]domain.Reservation), args.Error(1)
}

// setupReservationRouter mounts the vendor reservation routes behind a
// middleware that injects the authenticated vendor, standing in for
// VerifyJWT.
func setupReservationRouter(svc *mockReservationService, vendorID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, vendorID)
		ctx.Next()
	})

	handler := NewReservationHandler(svc)
	router.POST("/reservations", handler.HandleCreateReservation)
	router.GET("/reservations", handler.HandleListMyReservations)
	router.GET("/reservations/:id", handler.HandleGetReservation)
	router.GET("/reservations/:id/qr", handler.HandleGetReservationQR)
	router.DELETE("/reservations/:id", handler.HandleCancelReservation)

	return router
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func decodeErr(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	return payload
}

func TestHandleCreateReservation(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mockReservationService)
		svc.On("Request", uint(1), uint(3), "near the entrance").Return(domain.Reservation{
			ID:      10,
			StallID: 3,
			Status:  domain.ReservationStatusPending,
			QRData:  "BSFAIR-3F2A9C81D4E7",
		}, nil)

		router := setupReservationRouter(svc, 1)
		recorder := performJSON(t, router, http.MethodPost, "/reservations", gin.H{
			"stall_id": 3,
			"notes":    "near the entrance",
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)
		svc.AssertExpectations(t)
	})

	t.Run("stall already claimed renders CONFLICT", func(t *testing.T) {
		svc := new(mockReservationService)
		svc.On("Request", uint(1), uint(3), "").Return(domain.Reservation{}, service.ErrStallAlreadyClaimed)

		router := setupReservationRouter(svc, 1)
		recorder := performJSON(t, router, http.MethodPost, "/reservations", gin.H{"stall_id": 3})

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, "CONFLICT", decodeErr(t, recorder)["code"])
	})

	t.Run("quota renders QUOTA_EXCEEDED", func(t *testing.T) {
		svc := new(mockReservationService)
		svc.On("Request", uint(1), uint(3), "").Return(domain.Reservation{}, service.ErrReservationQuotaExceeded)

		router := setupReservationRouter(svc, 1)
		recorder := performJSON(t, router, http.MethodPost, "/reservations", gin.H{"stall_id": 3})

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, "QUOTA_EXCEEDED", decodeErr(t, recorder)["code"])
	})

	t.Run("missing stall id renders VALIDATION_ERROR", func(t *testing.T) {
		svc := new(mockReservationService)

		router := setupReservationRouter(svc, 1)
		recorder := performJSON(t, router, http.MethodPost, "/reservations", gin.H{"notes": "hello"})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeErr(t, recorder)["code"])
	})
}

func TestHandleGetReservation(t *testing.T) {
	t.Run("another vendor's reservation renders UNAUTHORIZED", func(t *testing.T) {
		svc := new(mockReservationService)
		vendorID := uint(1)
		svc.On("GetReservation", uint(10), &vendorID).Return(domain.Reservation{}, service.ErrNotReservationOwner)

		router := setupReservationRouter(svc, 1)
		recorder := performJSON(t, router, http.MethodGet, "/reservations/10", nil)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeErr(t, recorder)["code"])
	})

	t.Run("unknown reservation renders NOT_FOUND", func(t *testing.T) {
		svc := new(mockReservationService)
		vendorID := uint(1)
		svc.On("GetReservation", uint(10), &vendorID).Return(domain.Reservation{}, service.ErrReservationNotFound)

		router := setupReservationRouter(svc, 1)
		recorder := performJSON(t, router, http.MethodGet, "/reservations/10", nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "NOT_FOUND", decodeErr(t, recorder)["code"])
	})
}

func TestHandleGetReservationQR(t *testing.T) {
	t.Run("returns the stored token and QR image", func(t *testing.T) {
		svc := new(mockReservationService)
		vendorID := uint(1)
		svc.On("GetReservation", uint(10), &vendorID).Return(domain.Reservation{
			ID:      10,
			StallID: 3,
			Status:  domain.ReservationStatusConfirmed,
			QRData:  "BSFAIR-3F2A9C81D4E7",
			QRCode:  "aVBORw0KGgo=",
			Stall:   &domain.Stall{ID: 3, Name: "A1"},
		}, nil)

		router := setupReservationRouter(svc, 1)
		recorder := performJSON(t, router, http.MethodGet, "/reservations/10/qr", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var payload struct {
			QRData    string `json:"qr_data"`
			QRCode    string `json:"qr_code"`
			StallName string `json:"stall_name"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		assert.Equal(t, "BSFAIR-3F2A9C81D4E7", payload.QRData)
		assert.Equal(t, "aVBORw0KGgo=", payload.QRCode)
		assert.Equal(t, "A1", payload.StallName)
	})

	t.Run("pending reservation has no pass yet", func(t *testing.T) {
		svc := new(mockReservationService)
		vendorID := uint(1)
		svc.On("GetReservation", uint(10), &vendorID).Return(domain.Reservation{
			ID:     10,
			Status: domain.ReservationStatusPending,
			QRData: "BSFAIR-3F2A9C81D4E7",
		}, nil)

		router := setupReservationRouter(svc, 1)
		recorder := performJSON(t, router, http.MethodGet, "/reservations/10/qr", nil)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, "CONFLICT", decodeErr(t, recorder)["code"])
	})
}

func TestHandleCancelReservation(t *testing.T) {
	t.Run("cancelled with email warning", func(t *testing.T) {
		svc := new(mockReservationService)
		vendorID := uint(1)
		svc.On("Cancel", uint(10), &vendorID).Return(domain.Reservation{
			ID:     10,
			Status: domain.ReservationStatusCancelled,
		}, false, nil)

		router := setupReservationRouter(svc, 1)
		recorder := performJSON(t, router, http.MethodDelete, "/reservations/10", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var payload struct {
			EmailSent *bool `json:"email_sent"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		require.NotNil(t, payload.EmailSent)
		assert.False(t, *payload.EmailSent)
	})

	t.Run("cancelling twice renders ALREADY_CANCELLED", func(t *testing.T) {
		svc := new(mockReservationService)
		vendorID := uint(1)
		svc.On("Cancel", uint(10), &vendorID).Return(domain.Reservation{}, false, service.ErrAlreadyCancelled)

		router := setupReservationRouter(svc, 1)
		recorder := performJSON(t, router, http.MethodDelete, "/reservations/10", nil)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, "ALREADY_CANCELLED", decodeErr(t, recorder)["code"])
	})
}

func TestHandleApproveReservation(t *testing.T) {
	setupEmployeeRouter := func(svc *mockReservationService) *gin.Engine {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		handler := NewEmployeeHandler(svc, nil, nil)
		router.PUT("/employee/reservations/:id/approve", handler.HandleApproveReservation)
		router.PUT("/employee/reservations/:id/reject", handler.HandleRejectReservation)

		return router
	}

	t.Run("approved", func(t *testing.T) {
		svc := new(mockReservationService)
		svc.On("Approve", uint(10)).Return(domain.Reservation{
			ID:     10,
			Status: domain.ReservationStatusConfirmed,
		}, true, nil)

		router := setupEmployeeRouter(svc)
		recorder := performJSON(t, router, http.MethodPut, "/employee/reservations/10/approve", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("double approve renders INVALID_TRANSITION", func(t *testing.T) {
		svc := new(mockReservationService)
		svc.On("Approve", uint(10)).Return(domain.Reservation{}, false, service.ErrInvalidStatusTransition)

		router := setupEmployeeRouter(svc)
		recorder := performJSON(t, router, http.MethodPut, "/employee/reservations/10/approve", nil)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, "INVALID_TRANSITION", decodeErr(t, recorder)["code"])
	})

	t.Run("reject forwards the reason", func(t *testing.T) {
		svc := new(mockReservationService)
		svc.On("Reject", uint(10), "row reserved for sponsors").Return(domain.Reservation{
			ID:     10,
			Status: domain.ReservationStatusCancelled,
		}, true, nil)

		router := setupEmployeeRouter(svc)
		recorder := performJSON(t, router, http.MethodPut, "/employee/reservations/10/reject", gin.H{
			"reason": "row reserved for sponsors",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		svc.AssertExpectations(t)
	})
}
