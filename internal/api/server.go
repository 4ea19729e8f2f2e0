package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"artgallery-api/docs"
	v1 "artgallery-api/internal/api/handler/v1"
	"artgallery-api/internal/api/middleware"
	"artgallery-api/internal/config"
	"artgallery-api/internal/repository"
	"artgallery-api/internal/repository/dao"
	"artgallery-api/internal/service"
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

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	users := v1.NewUserGetter(userSvc)

	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(userSvc)
	artistHandler, artPieceHandler, exhibitionHandler, dashboardHandler := s.initGalleryHandlers(db, users)
	registrationHandler := s.initRegistrationHandler(db, users)

	s.MountHandlers(authHandler, userHandler, artistHandler, artPieceHandler, exhibitionHandler, registrationHandler, dashboardHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	tokenRepo := repository.NewTokenRepository(dao.NewTokenDAO(db))
	svc := service.NewAuthService(userRepo, tokenRepo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initGalleryHandlers(db *gorm.DB, users v1.UserGetter) (*v1.ArtistHandler, *v1.ArtPieceHandler, *v1.ExhibitionHandler, *v1.DashboardHandler) {
	galleryRepo := repository.NewGalleryRepository(dao.NewGalleryDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewGalleryService(galleryRepo, registrationRepo, userRepo)

	return v1.NewArtistHandler(svc, users),
		v1.NewArtPieceHandler(svc, users),
		v1.NewExhibitionHandler(svc, users),
		v1.NewDashboardHandler(svc, users)
}

func (s *Server) initRegistrationHandler(db *gorm.DB, users v1.UserGetter) *v1.RegistrationHandler {
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	galleryRepo := repository.NewGalleryRepository(dao.NewGalleryDAO(db))
	svc := service.NewRegistrationService(registrationRepo, galleryRepo)
	handler := v1.NewRegistrationHandler(svc, users)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	artistHandler *v1.ArtistHandler,
	artPieceHandler *v1.ArtPieceHandler,
	exhibitionHandler *v1.ExhibitionHandler,
	registrationHandler *v1.RegistrationHandler,
	dashboardHandler *v1.DashboardHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/refresh", authHandler.HandleRefresh)
		auth.POST("/auth/logout", authHandler.HandleLogout)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/me", userHandler.HandleGetProfile)
		authenticated.GET("/users", userHandler.HandleListUsers)

		authenticated.GET("/artists", artistHandler.HandleListArtists)
		authenticated.POST("/artists", artistHandler.HandleCreateArtist)
		authenticated.GET("/artists/:id", artistHandler.HandleGetArtist)
		authenticated.PUT("/artists/:id", artistHandler.HandleUpdateArtist)
		authenticated.DELETE("/artists/:id", artistHandler.HandleDeleteArtist)

		authenticated.GET("/artpieces", artPieceHandler.HandleListArtPieces)
		authenticated.POST("/artpieces", artPieceHandler.HandleCreateArtPiece)
		authenticated.GET("/artpieces/:id", artPieceHandler.HandleGetArtPiece)
		authenticated.PUT("/artpieces/:id", artPieceHandler.HandleUpdateArtPiece)
		authenticated.DELETE("/artpieces/:id", artPieceHandler.HandleDeleteArtPiece)

		authenticated.GET("/exhibitions", exhibitionHandler.HandleListExhibitions)
		authenticated.POST("/exhibitions", exhibitionHandler.HandleCreateExhibition)
		authenticated.GET("/exhibitions/:id", exhibitionHandler.HandleGetExhibition)
		authenticated.PUT("/exhibitions/:id", exhibitionHandler.HandleUpdateExhibition)
		authenticated.DELETE("/exhibitions/:id", exhibitionHandler.HandleDeleteExhibition)
		authenticated.POST("/exhibitions/:id/artpieces", exhibitionHandler.HandleAssignArtPiece)
		authenticated.DELETE("/exhibitions/:id/artpieces/:artpieceID", exhibitionHandler.HandleUnassignArtPiece)
		authenticated.POST("/exhibitions/:id/confirm-setup", exhibitionHandler.HandleConfirmSetup)
		authenticated.POST("/exhibitions/:id/confirm-teardown", exhibitionHandler.HandleConfirmTeardown)
		authenticated.GET("/exhibitions/:id/setup-status", exhibitionHandler.HandleGetSetupStatus)
		authenticated.GET("/setupstatuses", exhibitionHandler.HandleListSetupStatuses)

		authenticated.GET("/registrations", registrationHandler.HandleListRegistrations)
		authenticated.POST("/registrations", registrationHandler.HandleCreateRegistration)
		authenticated.GET("/registrations/my", registrationHandler.HandleMyRegistrations)
		authenticated.GET("/registrations/queue-status", registrationHandler.HandleQueueStatus)
		authenticated.GET("/registrations/:id", registrationHandler.HandleGetRegistration)
		authenticated.PATCH("/registrations/:id", registrationHandler.HandleUpdateRegistration)
		authenticated.DELETE("/registrations/:id", registrationHandler.HandleDeleteRegistration)
		authenticated.POST("/registrations/:id/approve", registrationHandler.HandleApproveRegistration)
		authenticated.POST("/registrations/:id/reject", registrationHandler.HandleRejectRegistration)
		authenticated.POST("/registrations/:id/cancel", registrationHandler.HandleCancelRegistration)
		authenticated.GET("/visitors", registrationHandler.HandleListVisitors)

		authenticated.GET("/dashboard/stats", dashboardHandler.HandleDashboardStats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Art Gallery API"
	docs.SwaggerInfo.Description = "REST API for managing exhibitions, art pieces and visitor registrations."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
