package api

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/growoff/growoff-api/docs"
	v1 "github.com/growoff/growoff-api/internal/api/handler/v1"
	"github.com/growoff/growoff-api/internal/api/middleware"
	"github.com/growoff/growoff-api/internal/config"
	"github.com/growoff/growoff-api/internal/imagestore"
	"github.com/growoff/growoff-api/internal/repository"
	"github.com/growoff/growoff-api/internal/repository/dao"
	"github.com/growoff/growoff-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, client *firestore.Client, images imagestore.Store) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	repo := repository.NewUserRepository(dao.NewUserDAO(client))
	resolver := service.NewRoleResolver(repo, conf.Contest)

	authHandler := v1.NewAuthHandler(conf.API, service.NewAuthService(repo, resolver))
	userSvc := service.NewUserService(repo, resolver)
	submissionSvc := service.NewSubmissionService(repo, images)
	submissionHandler := v1.NewSubmissionHandler(submissionSvc, userSvc)
	galleryHandler := v1.NewGalleryHandler(submissionSvc, userSvc)
	reviewHandler := v1.NewReviewHandler(service.NewReviewService(repo), userSvc)
	adminHandler := v1.NewAdminHandler(userSvc)

	s.MountHandlers(authHandler, submissionHandler, galleryHandler, reviewHandler, adminHandler)

	return s
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
	submissionHandler *v1.SubmissionHandler,
	galleryHandler *v1.GalleryHandler,
	reviewHandler *v1.ReviewHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.POST("/submissions", submissionHandler.HandleSubmitWeek)
		authed.GET("/gallery", galleryHandler.HandleGetGallery)
		authed.DELETE("/gallery/images", galleryHandler.HandleDeleteImage)

		authed.GET("/review/contestants", reviewHandler.HandleListContestants)
		authed.PUT("/review/contestants/:userID/notes/:week", reviewHandler.HandleSaveNote)

		authed.GET("/admin/users", adminHandler.HandleListUsers)
		authed.PUT("/admin/users/:userID/role", adminHandler.HandleUpdateRole)
		authed.POST("/admin/roles/repair", adminHandler.HandleRepairRoles)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// The filesystem image store serves its uploads straight from disk.
	if s.Config.Images.Provider == "filesystem" {
		s.Router.Static("/uploads", s.Config.Images.BasePath)
	}

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Grow-Off API"
	docs.SwaggerInfo.Description = "API for the Grow-Off competition: weekly submissions, judging and role administration."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
