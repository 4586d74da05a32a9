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

type StallService interface {
	GetStall(ctx context.Context, id uint) (service.StallWithStatus, error)
	ListStalls(ctx context.Context) ([]service.StallWithStatus, error)
	ListStallsBySize(ctx context.Context, size string) ([]service.StallWithStatus, error)
	CreateStall(ctx context.Context, stall domain.Stall) (domain.Stall, error)
	UpdateStall(ctx context.Context, stall domain.Stall) (domain.Stall, error)
}

type StallAnalyticsService interface {
	GetStallStats(ctx context.Context) (service.StallStats, error)
}

type StallHandler struct {
	svc          StallService
	analyticsSvc StallAnalyticsService
}

func NewStallHandler(svc StallService, analyticsSvc StallAnalyticsService) *StallHandler {
	return &StallHandler{
		svc:          svc,
		analyticsSvc: analyticsSvc,
	}
}

// HandleListStalls godoc
// @Summary      List all stalls with their booking state
// @Tags         stalls
// @Produce      json
// @Success      200  {array}   service.StallWithStatus
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /stalls [get]
func (h *StallHandler) HandleListStalls(ctx *gin.Context) {
	stalls, err := h.svc.ListStalls(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListStalls -> h.svc.ListStalls -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stalls)
}

// HandleGetStall godoc
// @Summary      Get one stall with its booking state
// @Tags         stalls
// @Produce      json
// @Param        id   path      int  true  "stall id"
// @Success      200  {object}  service.StallWithStatus
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /stalls/{id} [get]
func (h *StallHandler) HandleGetStall(ctx *gin.Context) {
	stallID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("id must be a positive integer")))

		return
	}

	stall, err := h.svc.GetStall(ctx.Request.Context(), uint(stallID))
	if err != nil {
		if errors.Is(err, service.ErrStallNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStallNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetStall -> h.svc.GetStall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stall)
}

// HandleListStallsBySize godoc
// @Summary      List stalls of a given size with their booking state
// @Tags         stalls
// @Produce      json
// @Param        size  path      string  true  "small, medium or large"
// @Success      200   {array}   service.StallWithStatus
// @Failure      400   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Security     BearerAuth
// @Router       /stalls/size/{size} [get]
func (h *StallHandler) HandleListStallsBySize(ctx *gin.Context) {
	stalls, err := h.svc.ListStallsBySize(ctx.Request.Context(), ctx.Param("size"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStallSize) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStallSize))

			return
		}

		err = fmt.Errorf("v1.HandleListStallsBySize -> h.svc.ListStallsBySize -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stalls)
}

// HandleGetStallStats godoc
// @Summary      Get aggregate stall availability numbers
// @Tags         stalls
// @Produce      json
// @Success      200  {object}  service.StallStats
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /stalls/stats [get]
func (h *StallHandler) HandleGetStallStats(ctx *gin.Context) {
	stats, err := h.analyticsSvc.GetStallStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStallStats -> h.analyticsSvc.GetStallStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleCreateStall godoc
// @Summary      Create a stall
// @Tags         stalls
// @Produce      json
// @Param        request   body      request.CreateStallRequest true "request body"
// @Success      201      {object}   domain.Stall
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /employee/stalls [post]
func (h *StallHandler) HandleCreateStall(ctx *gin.Context) {
	var req request.CreateStallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	stall, err := h.svc.CreateStall(ctx.Request.Context(), domain.Stall{
		Name:        req.Name,
		Size:        req.Size,
		LocationX:   req.LocationX,
		LocationY:   req.LocationY,
		Dimensions:  req.Dimensions,
		Price:       req.Price,
		IsAvailable: true,
	})
	if err != nil {
		if errors.Is(err, service.ErrStallNameExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrStallNameExists))

			return
		}
		if errors.Is(err, service.ErrInvalidStallSize) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStallSize))

			return
		}

		err = fmt.Errorf("v1.HandleCreateStall -> h.svc.CreateStall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, stall)
}

// HandleUpdateStall godoc
// @Summary      Update a stall
// @Tags         stalls
// @Produce      json
// @Param        id        path      int true "stall id"
// @Param        request   body      request.UpdateStallRequest true "request body"
// @Success      200      {object}   domain.Stall
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /employee/stalls/{id} [put]
func (h *StallHandler) HandleUpdateStall(ctx *gin.Context) {
	stallID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("id must be a positive integer")))

		return
	}

	var req request.UpdateStallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	existing, err := h.svc.GetStall(ctx.Request.Context(), uint(stallID))
	if err != nil {
		if errors.Is(err, service.ErrStallNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStallNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateStall -> h.svc.GetStall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	stall := existing.Stall
	if req.Name != nil {
		stall.Name = *req.Name
	}
	if req.Size != nil {
		stall.Size = *req.Size
	}
	if req.LocationX != nil {
		stall.LocationX = *req.LocationX
	}
	if req.LocationY != nil {
		stall.LocationY = *req.LocationY
	}
	if req.Dimensions != nil {
		stall.Dimensions = *req.Dimensions
	}
	if req.Price != nil {
		stall.Price = *req.Price
	}
	if req.IsAvailable != nil {
		stall.IsAvailable = *req.IsAvailable
	}

	updated, err := h.svc.UpdateStall(ctx.Request.Context(), stall)
	if err != nil {
		if errors.Is(err, service.ErrStallNameExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrStallNameExists))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateStall -> h.svc.UpdateStall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}
