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
	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/service"
)

type AnalyticsService interface {
	GetDashboard(ctx context.Context) (service.Dashboard, error)
	GetOccupancyBySize(ctx context.Context) (map[string]service.SizeOccupancy, error)
	GetRevenue(ctx context.Context) (service.RevenueReport, error)
}

type EmployeeVendorService interface {
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
}

// EmployeeHandler serves the staff-only surface: reservation review,
// vendor lists and the analytics reports.
type EmployeeHandler struct {
	reservationSvc ReservationService
	analyticsSvc   AnalyticsService
	vendorSvc      EmployeeVendorService
}

func NewEmployeeHandler(
	reservationSvc ReservationService,
	analyticsSvc AnalyticsService,
	vendorSvc EmployeeVendorService,
) *EmployeeHandler {
	return &EmployeeHandler{
		reservationSvc: reservationSvc,
		analyticsSvc:   analyticsSvc,
		vendorSvc:      vendorSvc,
	}
}

// HandleGetDashboard godoc
// @Summary      Get the staff dashboard counters
// @Tags         employee
// @Produce      json
// @Success      200  {object}  service.Dashboard
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /employee/dashboard [get]
func (h *EmployeeHandler) HandleGetDashboard(ctx *gin.Context) {
	dashboard, err := h.analyticsSvc.GetDashboard(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDashboard -> h.analyticsSvc.GetDashboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// HandleGetOccupancy godoc
// @Summary      Get occupancy broken down by stall size
// @Tags         employee
// @Produce      json
// @Success      200  {object}  map[string]service.SizeOccupancy
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /employee/occupancy [get]
func (h *EmployeeHandler) HandleGetOccupancy(ctx *gin.Context) {
	occupancy, err := h.analyticsSvc.GetOccupancyBySize(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetOccupancy -> h.analyticsSvc.GetOccupancyBySize -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, occupancy)
}

// HandleGetRevenue godoc
// @Summary      Get confirmed-reservation revenue totals
// @Tags         employee
// @Produce      json
// @Success      200  {object}  service.RevenueReport
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /employee/revenue [get]
func (h *EmployeeHandler) HandleGetRevenue(ctx *gin.Context) {
	revenue, err := h.analyticsSvc.GetRevenue(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRevenue -> h.analyticsSvc.GetRevenue -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, revenue)
}

// HandleListVendors godoc
// @Summary      List all registered vendors
// @Tags         employee
// @Produce      json
// @Success      200  {array}   domain.Vendor
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /employee/vendors [get]
func (h *EmployeeHandler) HandleListVendors(ctx *gin.Context) {
	vendors, err := h.vendorSvc.ListVendors(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListVendors -> h.vendorSvc.ListVendors -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, vendors)
}

// HandleListReservations godoc
// @Summary      List all reservations, optionally filtered by status
// @Tags         employee
// @Produce      json
// @Param        status   query     string false "pending, confirmed or cancelled"
// @Success      200     {array}    domain.Reservation
// @Failure      400     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Security     BearerAuth
// @Router       /employee/reservations [get]
func (h *EmployeeHandler) HandleListReservations(ctx *gin.Context) {
	status := ctx.Query("status")
	if status != "" &&
		status != domain.ReservationStatusPending &&
		status != domain.ReservationStatusConfirmed &&
		status != domain.ReservationStatusCancelled {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("status must be pending, confirmed or cancelled")))

		return
	}

	reservations, err := h.reservationSvc.ListReservations(ctx.Request.Context(), status)
	if err != nil {
		err = fmt.Errorf("v1.HandleListReservations -> h.reservationSvc.ListReservations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, reservations)
}

// HandleApproveReservation godoc
// @Summary      Approve a pending reservation
// @Tags         employee
// @Produce      json
// @Param        id   path      int  true  "reservation id"
// @Success      200  {object}  response.ReservationResponse
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Security     BearerAuth
// @Router       /employee/reservations/{id}/approve [put]
func (h *EmployeeHandler) HandleApproveReservation(ctx *gin.Context) {
	reservationID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("id must be a positive integer")))

		return
	}

	reservation, emailSent, err := h.reservationSvc.Approve(ctx.Request.Context(), uint(reservationID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrReservationNotFound))
		case errors.Is(err, service.ErrInvalidStatusTransition):
			response.RenderErr(ctx, response.ErrInvalidTransition(service.ErrInvalidStatusTransition))
		default:
			err = fmt.Errorf("v1.HandleApproveReservation -> h.reservationSvc.Approve -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.ReservationResponse{
		Message:     "Reservation approved",
		Reservation: reservation,
		EmailSent:   &emailSent,
	})
}

// HandleRejectReservation godoc
// @Summary      Reject a pending reservation
// @Tags         employee
// @Produce      json
// @Param        id        path      int true "reservation id"
// @Param        request   body      request.RejectReservationRequest false "request body"
// @Success      200      {object}   response.ReservationResponse
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Security     BearerAuth
// @Router       /employee/reservations/{id}/reject [put]
func (h *EmployeeHandler) HandleRejectReservation(ctx *gin.Context) {
	reservationID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("id must be a positive integer")))

		return
	}

	// The reason is optional; an empty body is fine.
	var req request.RejectReservationRequest
	_ = ctx.ShouldBindJSON(&req)

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, emailSent, err := h.reservationSvc.Reject(ctx.Request.Context(), uint(reservationID), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrReservationNotFound))
		case errors.Is(err, service.ErrInvalidStatusTransition):
			response.RenderErr(ctx, response.ErrInvalidTransition(service.ErrInvalidStatusTransition))
		default:
			err = fmt.Errorf("v1.HandleRejectReservation -> h.reservationSvc.Reject -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.ReservationResponse{
		Message:     "Reservation rejected",
		Reservation: reservation,
		EmailSent:   &emailSent,
	})
}

// HandleCancelReservation godoc
// @Summary      Cancel any reservation as staff
// @Tags         employee
// @Produce      json
// @Param        id   path      int  true  "reservation id"
// @Success      200  {object}  response.ReservationResponse
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Security     BearerAuth
// @Router       /employee/reservations/{id} [delete]
func (h *EmployeeHandler) HandleCancelReservation(ctx *gin.Context) {
	reservationID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("id must be a positive integer")))

		return
	}

	reservation, emailSent, err := h.reservationSvc.Cancel(ctx.Request.Context(), uint(reservationID), nil)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrReservationNotFound))
		case errors.Is(err, service.ErrAlreadyCancelled):
			response.RenderErr(ctx, response.ErrAlreadyCancelled(service.ErrAlreadyCancelled))
		default:
			err = fmt.Errorf("v1.HandleCancelReservation -> h.reservationSvc.Cancel -> %w", err)
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
