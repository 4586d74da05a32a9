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
	"github.com/bookfairlk/stall-reservation-api/internal/config"
	"github.com/bookfairlk/stall-reservation-api/internal/domain"
	"github.com/bookfairlk/stall-reservation-api/internal/pkg/jwthelper"
	"github.com/bookfairlk/stall-reservation-api/internal/service"
)

type AuthService interface {
	SignupVendor(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)
	LoginVendor(ctx context.Context, email, password string) (domain.Vendor, error)
	SignupEmployee(ctx context.Context, employee domain.Employee) (domain.Employee, error)
	LoginEmployee(ctx context.Context, email, password string) (domain.Employee, error)
	ChangeVendorPassword(ctx context.Context, vendorID uint, oldPassword, newPassword string) error
}

type AuthVendorService interface {
	GetVendor(ctx context.Context, id uint) (domain.Vendor, error)
	UpdateProfile(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)
}

type AuthHandler struct {
	conf      *config.APIConfig
	svc       AuthService
	vendorSvc AuthVendorService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, vendorSvc AuthVendorService) *AuthHandler {
	return &AuthHandler{
		conf:      conf,
		svc:       svc,
		vendorSvc: vendorSvc,
	}
}

// HandleVendorSignup godoc
// @Summary      Register a new vendor
// @Tags         auth
// @Produce      json
// @Param        request   body      request.VendorSignupRequest true "request body"
// @Success      201      {object}   response.VendorLoginResponse
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleVendorSignup(ctx *gin.Context) {
	var req request.VendorSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	vendor, err := h.svc.SignupVendor(ctx.Request.Context(), domain.Vendor{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
	})
	if err != nil {
		if errors.Is(err, service.ErrVendorEmailExists) || errors.Is(err, service.ErrVendorUsernameExists) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}

		err = fmt.Errorf("v1.HandleVendorSignup -> h.svc.SignupVendor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), vendor.ID, jwthelper.RoleVendor, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleVendorSignup -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.VendorLoginResponse{
		Token:  token,
		Vendor: vendor,
	})
}

// HandleVendorLogin godoc
// @Summary      Login a vendor
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.VendorLoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleVendorLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	vendor, err := h.svc.LoginVendor(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) ||
			errors.Is(err, service.ErrWrongPassword) ||
			errors.Is(err, service.ErrAccountInactive) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleVendorLogin -> h.svc.LoginVendor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), vendor.ID, jwthelper.RoleVendor, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleVendorLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.VendorLoginResponse{
		Token:  token,
		Vendor: vendor,
	})
}

// HandleEmployeeSignup godoc
// @Summary      Register a new staff member
// @Tags         auth
// @Produce      json
// @Param        request   body      request.EmployeeSignupRequest true "request body"
// @Success      201      {object}   response.EmployeeLoginResponse
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/employee/signup [post]
func (h *AuthHandler) HandleEmployeeSignup(ctx *gin.Context) {
	var req request.EmployeeSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	employee, err := h.svc.SignupEmployee(ctx.Request.Context(), domain.Employee{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmployeeEmailExists) || errors.Is(err, service.ErrEmployeeUsernameExists) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}

		err = fmt.Errorf("v1.HandleEmployeeSignup -> h.svc.SignupEmployee -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), employee.ID, jwthelper.RoleEmployee, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleEmployeeSignup -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.EmployeeLoginResponse{
		Token:    token,
		Employee: employee,
	})
}

// HandleEmployeeLogin godoc
// @Summary      Login a staff member
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.EmployeeLoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/employee/login [post]
func (h *AuthHandler) HandleEmployeeLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	employee, err := h.svc.LoginEmployee(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) ||
			errors.Is(err, service.ErrWrongPassword) ||
			errors.Is(err, service.ErrAccountInactive) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleEmployeeLogin -> h.svc.LoginEmployee -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), employee.ID, jwthelper.RoleEmployee, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleEmployeeLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.EmployeeLoginResponse{
		Token:    token,
		Employee: employee,
	})
}

// HandleGetMe godoc
// @Summary      Get the authenticated vendor's profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Vendor
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) HandleGetMe(ctx *gin.Context) {
	vendorID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	vendor, err := h.vendorSvc.GetVendor(ctx.Request.Context(), vendorID)
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrVendorNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetMe -> h.vendorSvc.GetVendor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, vendor)
}

// HandleUpdateProfile godoc
// @Summary      Update the authenticated vendor's profile
// @Tags         auth
// @Produce      json
// @Param        request   body      request.UpdateProfileRequest true "request body"
// @Success      200      {object}   domain.Vendor
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Security     BearerAuth
// @Router       /auth/profile [put]
func (h *AuthHandler) HandleUpdateProfile(ctx *gin.Context) {
	vendorID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	existing, err := h.vendorSvc.GetVendor(ctx.Request.Context(), vendorID)
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrVendorNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateProfile -> h.vendorSvc.GetVendor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if req.BusinessName != "" {
		existing.BusinessName = req.BusinessName
	}
	if req.Phone != "" {
		existing.Phone = req.Phone
	}
	if req.Address != "" {
		existing.Address = req.Address
	}
	if req.City != "" {
		existing.City = req.City
	}
	if req.Country != "" {
		existing.Country = req.Country
	}

	updated, err := h.vendorSvc.UpdateProfile(ctx.Request.Context(), existing)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateProfile -> h.vendorSvc.UpdateProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleChangePassword godoc
// @Summary      Change the authenticated vendor's password
// @Tags         auth
// @Produce      json
// @Param        request   body      request.ChangePasswordRequest true "request body"
// @Success      200      {object}   map[string]string
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Security     BearerAuth
// @Router       /auth/change-password [post]
func (h *AuthHandler) HandleChangePassword(ctx *gin.Context) {
	vendorID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err := h.svc.ChangeVendorPassword(ctx.Request.Context(), vendorID, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(service.ErrWrongPassword))

			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangeVendorPassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
