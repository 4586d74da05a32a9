package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookfairlk/stall-reservation-api/internal/api/handler/v1/request"
	"github.com/bookfairlk/stall-reservation-api/internal/api/handler/v1/response"
	"github.com/bookfairlk/stall-reservation-api/internal/api/middleware"
	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/service"
)

type GenreService interface {
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	SelectGenres(ctx context.Context, vendorID uint, genreIDs []uint) (domain.Vendor, error)
}

type GenreHandler struct {
	svc GenreService
}

func NewGenreHandler(svc GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

// HandleListGenres godoc
// @Summary      List all book genres
// @Tags         genres
// @Produce      json
// @Success      200  {array}   domain.Genre
// @Failure      500  {object}  response.Err
// @Router       /genres [get]
func (h *GenreHandler) HandleListGenres(ctx *gin.Context) {
	genres, err := h.svc.ListGenres(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListGenres -> h.svc.ListGenres -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, genres)
}

// HandleSelectGenres godoc
// @Summary      Replace the authenticated vendor's genre tags
// @Tags         genres
// @Produce      json
// @Param        request   body      request.SelectGenresRequest true "request body"
// @Success      200      {object}   domain.Vendor
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Security     BearerAuth
// @Router       /genres/select [post]
func (h *GenreHandler) HandleSelectGenres(ctx *gin.Context) {
	vendorID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	var req request.SelectGenresRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	vendor, err := h.svc.SelectGenres(ctx.Request.Context(), vendorID, req.GenreIDs)
	if err != nil {
		if errors.Is(err, service.ErrGenreNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrGenreNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleSelectGenres -> h.svc.SelectGenres -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, vendor)
}
