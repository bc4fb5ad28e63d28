package server

import (
	"log"
	"strings"
	"time"

	"github.com/foc-sab/ctrlroom/internal/config"
	"github.com/foc-sab/ctrlroom/internal/handler"
	"github.com/foc-sab/ctrlroom/internal/mail"
	"github.com/foc-sab/ctrlroom/internal/middleware"
	"github.com/foc-sab/ctrlroom/internal/repository"
	"github.com/foc-sab/ctrlroom/internal/service"
	"github.com/foc-sab/ctrlroom/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	computerRepo := repository.NewComputerRepository(db)
	softwareRepo := repository.NewSoftwareRepository(db)

	var imageStorage storage.ImageStorage
	if cfg.AppEnv != "test" {
		var err error
		imageStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Printf("cloudinary storage unavailable, profile pictures disabled: %v", err)
		}
	}

	mailer := mail.NewMailer(cfg)

	authService := service.NewAuthService(userRepo, tokenRepo, resetRepo, mailer, redisClient, cfg)
	authHandler := handler.NewAuthHandler(authService)

	profileService := service.NewProfileService(userRepo, imageStorage)
	userHandler := handler.NewUserHandler(profileService)

	computerService := service.NewComputerService(computerRepo)
	computerHandler := handler.NewComputerHandler(computerService)

	softwareService := service.NewSoftwareService(softwareRepo, computerRepo)
	softwareHandler := handler.NewSoftwareHandler(softwareService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, tokenRepo, cfg.JWTSecret)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Backend is running"})
	})

	// Every route's auth requirement is declared here, per route: public,
	// bearer, or bearer+admin. Nothing inherits access implicitly from its
	// path prefix.
	api := router.Group("/api")

	// Public: account entry points.
	api.POST("/register/student", authHandler.RegisterStudent)
	api.POST("/register/admin", authHandler.RegisterAdmin)
	api.POST("/login", authHandler.Login)
	api.POST("/forgot-password", authHandler.ForgotPassword)
	api.POST("/reset-password", authHandler.ResetPassword)

	// Public: inventory reads.
	api.GET("/computers", computerHandler.List)
	api.GET("/computers/:id", computerHandler.Get)
	api.GET("/computers/status/:status", computerHandler.ListByStatus)
	api.GET("/computers/statistics/overview", computerHandler.Statistics)
	api.GET("/computers/:id/software", softwareHandler.List)
	api.GET("/computers/:id/software/:softwareID", softwareHandler.Get)
	api.GET("/software/categories", softwareHandler.Categories)

	// Bearer: self-service and user lookups.
	authed := api.Group("")
	authed.Use(authMiddleware.RequireAuth())
	{
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/user", userHandler.CurrentUser)
		authed.GET("/user/profile", userHandler.GetProfile)
		authed.PUT("/user/profile", userHandler.UpdateProfile)
		authed.DELETE("/user/account", userHandler.DeleteAccount)
		authed.GET("/users", userHandler.ListUsers)
		authed.GET("/users/:id", userHandler.GetUser)

		// Any signed-in user can report an issue against a computer.
		authed.POST("/computers/:id/complaints", computerHandler.AddComplaint)
	}

	// Bearer + admin: inventory mutations.
	admin := api.Group("")
	admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		admin.POST("/computers", computerHandler.Create)
		admin.PUT("/computers/:id", computerHandler.Update)
		admin.PATCH("/computers/:id", computerHandler.Update)
		admin.DELETE("/computers/:id", computerHandler.Delete)
		admin.PATCH("/computers/:id/status", computerHandler.UpdateStatus)
		admin.PATCH("/computers/:id/complaints", computerHandler.SetComplaints)
		admin.PATCH("/computers/:id/complaints/:complaintID", computerHandler.UpdateComplaint)
		admin.DELETE("/computers/:id/complaints/:complaintID", computerHandler.DeleteComplaint)

		admin.POST("/computers/:id/software", softwareHandler.Create)
		admin.PUT("/computers/:id/software/:softwareID", softwareHandler.Update)
		admin.PATCH("/computers/:id/software/:softwareID", softwareHandler.Update)
		admin.DELETE("/computers/:id/software/:softwareID", softwareHandler.Delete)
	}

	return &Server{
		engine: router,
		db:     db,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
