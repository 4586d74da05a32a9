package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/bookfairlk/stall-reservation-api/docs"
	v1 "github.com/bookfairlk/stall-reservation-api/internal/api/handler/v1"
	"github.com/bookfairlk/stall-reservation-api/internal/api/middleware"
	"github.com/bookfairlk/stall-reservation-api/internal/config"
	"github.com/bookfairlk/stall-reservation-api/internal/mailer"
	"github.com/bookfairlk/stall-reservation-api/internal/pkg/jwthelper"
	"github.com/bookfairlk/stall-reservation-api/internal/repository"
	"github.com/bookfairlk/stall-reservation-api/internal/repository/dao"
	"github.com/bookfairlk/stall-reservation-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	stallHandler := s.initStallHandler(db)
	genreHandler := s.initGenreHandler(db)
	reservationHandler := s.initReservationHandler(db)
	employeeHandler := s.initEmployeeHandler(db)
	s.MountHandlers(authHandler, stallHandler, genreHandler, reservationHandler, employeeHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	vendorRepo := repository.NewVendorRepository(dao.NewVendorDAO(db))
	employeeRepo := repository.NewEmployeeRepository(dao.NewEmployeeDAO(db))
	genreRepo := repository.NewGenreRepository(dao.NewGenreDAO(db))
	svc := service.NewAuthService(vendorRepo, employeeRepo)
	vendorSvc := service.NewVendorService(vendorRepo, employeeRepo, genreRepo)
	handler := v1.NewAuthHandler(s.Config.API, svc, vendorSvc)

	return handler
}

func (s *Server) initStallHandler(db *gorm.DB) *v1.StallHandler {
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db))
	reservationRepo := repository.NewReservationRepository(dao.NewReservationDAO(db))
	vendorRepo := repository.NewVendorRepository(dao.NewVendorDAO(db))
	svc := service.NewStallService(stallRepo, reservationRepo)
	analyticsSvc := service.NewAnalyticsService(reservationRepo, stallRepo, vendorRepo)
	handler := v1.NewStallHandler(svc, analyticsSvc)

	return handler
}

func (s *Server) initGenreHandler(db *gorm.DB) *v1.GenreHandler {
	vendorRepo := repository.NewVendorRepository(dao.NewVendorDAO(db))
	employeeRepo := repository.NewEmployeeRepository(dao.NewEmployeeDAO(db))
	genreRepo := repository.NewGenreRepository(dao.NewGenreDAO(db))
	svc := service.NewVendorService(vendorRepo, employeeRepo, genreRepo)
	handler := v1.NewGenreHandler(svc)

	return handler
}

func (s *Server) initReservationHandler(db *gorm.DB) *v1.ReservationHandler {
	svc := s.buildReservationService(db)
	handler := v1.NewReservationHandler(svc)

	return handler
}

func (s *Server) initEmployeeHandler(db *gorm.DB) *v1.EmployeeHandler {
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db))
	reservationRepo := repository.NewReservationRepository(dao.NewReservationDAO(db))
	vendorRepo := repository.NewVendorRepository(dao.NewVendorDAO(db))
	employeeRepo := repository.NewEmployeeRepository(dao.NewEmployeeDAO(db))
	genreRepo := repository.NewGenreRepository(dao.NewGenreDAO(db))

	reservationSvc := s.buildReservationService(db)
	analyticsSvc := service.NewAnalyticsService(reservationRepo, stallRepo, vendorRepo)
	vendorSvc := service.NewVendorService(vendorRepo, employeeRepo, genreRepo)
	handler := v1.NewEmployeeHandler(reservationSvc, analyticsSvc, vendorSvc)

	return handler
}

func (s *Server) buildReservationService(db *gorm.DB) *service.ReservationService {
	reservationRepo := repository.NewReservationRepository(dao.NewReservationDAO(db))
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db))
	vendorRepo := repository.NewVendorRepository(dao.NewVendorDAO(db))

	return service.NewReservationService(reservationRepo, stallRepo, vendorRepo, mailer.NewSMTPMailer(s.Config.SMTP))
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.HTTPMetrics())
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	stallHandler *v1.StallHandler,
	genreHandler *v1.GenreHandler,
	reservationHandler *v1.ReservationHandler,
	employeeHandler *v1.EmployeeHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleVendorSignup)
		auth.POST("/auth/login", authHandler.HandleVendorLogin)
		auth.POST("/auth/employee/signup", authHandler.HandleEmployeeSignup)
		auth.POST("/auth/employee/login", authHandler.HandleEmployeeLogin)
		auth.GET("/genres", genreHandler.HandleListGenres)
	}

	vendors := s.Router.Group(basePath, verifyJWT, middleware.RequireRole(jwthelper.RoleVendor))
	{
		vendors.GET("/auth/me", authHandler.HandleGetMe)
		vendors.PUT("/auth/profile", authHandler.HandleUpdateProfile)
		vendors.POST("/auth/change-password", authHandler.HandleChangePassword)
		vendors.POST("/genres/select", genreHandler.HandleSelectGenres)

		vendors.POST("/reservations", reservationHandler.HandleCreateReservation)
		vendors.GET("/reservations", reservationHandler.HandleListMyReservations)
		vendors.GET("/reservations/:id", reservationHandler.HandleGetReservation)
		vendors.GET("/reservations/:id/qr", reservationHandler.HandleGetReservationQR)
		vendors.DELETE("/reservations/:id", reservationHandler.HandleCancelReservation)
	}

	stalls := s.Router.Group(basePath, verifyJWT)
	{
		stalls.GET("/stalls", stallHandler.HandleListStalls)
		stalls.GET("/stalls/stats", stallHandler.HandleGetStallStats)
		stalls.GET("/stalls/size/:size", stallHandler.HandleListStallsBySize)
		stalls.GET("/stalls/:id", stallHandler.HandleGetStall)
	}

	employees := s.Router.Group(basePath+"/employee", verifyJWT, middleware.RequireRole(jwthelper.RoleEmployee))
	{
		employees.GET("/dashboard", employeeHandler.HandleGetDashboard)
		employees.GET("/occupancy", employeeHandler.HandleGetOccupancy)
		employees.GET("/revenue", employeeHandler.HandleGetRevenue)
		employees.GET("/vendors", employeeHandler.HandleListVendors)
		employees.GET("/reservations", employeeHandler.HandleListReservations)
		employees.PUT("/reservations/:id/approve", employeeHandler.HandleApproveReservation)
		employees.PUT("/reservations/:id/reject", employeeHandler.HandleRejectReservation)
		employees.DELETE("/reservations/:id", employeeHandler.HandleCancelReservation)
		employees.GET("/stalls", stallHandler.HandleListStalls)
		employees.POST("/stalls", stallHandler.HandleCreateStall)
		employees.PUT("/stalls/:id", stallHandler.HandleUpdateStall)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/healthcheck", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Book Fair Stall Reservation API"
	docs.SwaggerInfo.Description = "Stall reservation backend for the annual book fair."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
