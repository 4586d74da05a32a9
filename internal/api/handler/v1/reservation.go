package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookfairlk/stall-reservation-api/internal/api/handler/v1/request"
	"github.com/bookfairlk/stall-reservation-api/internal/api/handler/v1/response"
	"github.com/bookfairlk/stall-reservation-api/internal/api/middleware"
	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/service"
)

type ReservationService interface {
	Request(ctx context.Context, vendorID, stallID uint, notes string) (domain.Reservation, error)
	Approve(ctx context.Context, reservationID uint) (domain.Reservation, bool, error)
	Reject(ctx context.Context, reservationID uint, reason string) (domain.Reservation, bool, error)
	Cancel(ctx context.Context, reservationID uint, actorVendorID *uint) (domain.Reservation, bool, error)
	GetReservation(ctx context.Context, reservationID uint, actorVendorID *uint) (domain.Reservation, error)
	ListVendorReservations(ctx context.Context, vendorID uint) ([]domain.Reservation, error)
	ListReservations(ctx context.Context, status string) ([]domain.Reservation, error)
}

type ReservationHandler struct {
	svc ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// HandleCreateReservation godoc
// @Summary      Request a stall reservation
// @Tags         reservations
// @Produce      json
// @Param        request   body      request.CreateReservationRequest true "request body"
// @Success      201      {object}   response.ReservationResponse
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Security     BearerAuth
// @Router       /reservations [post]
func (h *ReservationHandler) HandleCreateReservation(ctx *gin.Context) {
	vendorID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	var req request.CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, err := h.svc.Request(ctx.Request.Context(), vendorID, req.StallID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStallNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStallNotFound))
		case errors.Is(err, service.ErrVendorNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrVendorNotFound))
		case errors.Is(err, service.ErrStallNotAvailable):
			response.RenderErr(ctx, response.ErrConflict(service.ErrStallNotAvailable))
		case errors.Is(err, service.ErrStallAlreadyClaimed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrStallAlreadyClaimed))
		case errors.Is(err, service.ErrDuplicateReservation):
			response.RenderErr(ctx, response.ErrConflict(service.ErrDuplicateReservation))
		case errors.Is(err, service.ErrReservationQuotaExceeded):
			response.RenderErr(ctx, response.ErrQuotaExceeded(service.ErrReservationQuotaExceeded))
		default:
			err = fmt.Errorf("v1.HandleCreateReservation -> h.svc.Request -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.ReservationResponse{
		Message:     "Reservation requested, awaiting approval",
		Reservation: reservation,
	})
}

// HandleListMyReservations godoc
// @Summary      List the authenticated vendor's reservations
// @Tags         reservations
// @Produce      json
// @Success      200  {array}   domain.Reservation
// @Failure      401  {object}  response.Err
// @Security     BearerAuth
// @Router       /reservations [get]
func (h *ReservationHandler) HandleListMyReservations(ctx *gin.Context) {
	vendorID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	reservations, err := h.svc.ListVendorReservations(ctx.Request.Context(), vendorID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyReservations -> h.svc.ListVendorReservations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, reservations)
}

// HandleGetReservation godoc
// @Summary      Get one of the authenticated vendor's reservations
// @Tags         reservations
// @Produce      json
// @Param        id   path      int  true  "reservation id"
// @Success      200  {object}  domain.Reservation
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Security     BearerAuth
// @Router       /reservations/{id} [get]
func (h *ReservationHandler) HandleGetReservation(ctx *gin.Context) {
	vendorID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	reservationID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("id must be a positive integer")))

		return
	}

	reservation, err := h.svc.GetReservation(ctx.Request.Context(), uint(reservationID), &vendorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrReservationNotFound))
		case errors.Is(err, service.ErrNotReservationOwner):
			response.RenderErr(ctx, response.ErrUnauthorized(service.ErrNotReservationOwner))
		default:
			err = fmt.Errorf("v1.HandleGetReservation -> h.svc.GetReservation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleGetReservationQR godoc
// @Summary      Get the QR pass for a confirmed reservation
// @Tags         reservations
// @Produce      json
// @Param        id   path      int  true  "reservation id"
// @Success      200  {object}  response.ReservationQRResponse
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Security     BearerAuth
// @Router       /reservations/{id}/qr [get]
func (h *ReservationHandler) HandleGetReservationQR(ctx *gin.Context) {
	vendorID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	reservationID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("id must be a positive integer")))

		return
	}

	reservation, err := h.svc.GetReservation(ctx.Request.Context(), uint(reservationID), &vendorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrReservationNotFound))
		case errors.Is(err, service.ErrNotReservationOwner):
			response.RenderErr(ctx, response.ErrUnauthorized(service.ErrNotReservationOwner))
		default:
			err = fmt.Errorf("v1.HandleGetReservationQR -> h.svc.GetReservation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	if reservation.Status != domain.ReservationStatusConfirmed {
		response.RenderErr(ctx, response.ErrConflict(errors.New("reservation is not confirmed")))

		return
	}

	resp := response.ReservationQRResponse{
		QRData: reservation.QRData,
		QRCode: reservation.QRCode,
	}
	if reservation.Stall != nil {
		resp.StallName = reservation.Stall.Name
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleCancelReservation godoc
// @Summary      Cancel one of the authenticated vendor's reservations
// @Tags         reservations
// @Produce      json
// @Param        id   path      int  true  "reservation id"
// @Success      200  {object}  response.ReservationResponse
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Security     BearerAuth
// @Router       /reservations/{id} [delete]
func (h *ReservationHandler) HandleCancelReservation(ctx *gin.Context) {
	vendorID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	reservationID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("id must be a positive integer")))

		return
	}

	reservation, emailSent, err := h.svc.Cancel(ctx.Request.Context(), uint(reservationID), &vendorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrReservationNotFound))
		case errors.Is(err, service.ErrNotReservationOwner):
			response.RenderErr(ctx, response.ErrUnauthorized(service.ErrNotReservationOwner))
		case errors.Is(err, service.ErrAlreadyCancelled):
			response.RenderErr(ctx, response.ErrAlreadyCancelled(service.ErrAlreadyCancelled))
		default:
			err = fmt.Errorf("v1.HandleCancelReservation -> h.svc.Cancel -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.ReservationResponse{
		Message:     "Reservation cancelled",
		Reservation: reservation,
		EmailSent:   &emailSent,
	})
}
