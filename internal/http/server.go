package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prepkingdom/kingdom-api/internal/http/handlers"
	"github.com/prepkingdom/kingdom-api/internal/http/middleware"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/auth"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server represents the HTTP server
type Server struct {
	router          *gin.Engine
	jwtService      auth.JWTService
	userHandler     *handlers.UserHandler
	kingdomHandler  *handlers.KingdomHandler
	walletHandler   *handlers.WalletHandler
	buildingHandler *handlers.BuildingHandler
	contentHandler  *handlers.ContentHandler
	errorHandler    *middleware.ErrorHandler
	port            string
}

// NewServer creates a new HTTP server
func NewServer(
	jwtService auth.JWTService,
	userHandler *handlers.UserHandler,
	kingdomHandler *handlers.KingdomHandler,
	walletHandler *handlers.WalletHandler,
	buildingHandler *handlers.BuildingHandler,
	contentHandler *handlers.ContentHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
	port string,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(errorHandler.RequestIDMiddleware())
	router.Use(errorHandler.TimeoutMiddleware(30 * time.Second))
	router.Use(errorHandler.ErrorHandlerMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.MetricsMiddleware())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	server := &Server{
		router:          router,
		jwtService:      jwtService,
		userHandler:     userHandler,
		kingdomHandler:  kingdomHandler,
		walletHandler:   walletHandler,
		buildingHandler: buildingHandler,
		contentHandler:  contentHandler,
		errorHandler:    errorHandler,
		port:            port,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", s.userHandler.Register)
			authRoutes.POST("/login", s.userHandler.Login)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTMiddleware(s.jwtService))
		{
			userRoutes := protected.Group("/users")
			{
				userRoutes.GET("/me", s.userHandler.GetUserInfo)
				userRoutes.POST("/onboard", s.userHandler.Onboard)
			}

			protected.GET("/wallet", s.walletHandler.GetWallet)

			castleRoutes := protected.Group("/castle")
			{
				castleRoutes.GET("", s.kingdomHandler.GetCastle)
				castleRoutes.POST("/collect", s.kingdomHandler.CollectCastle)
				castleRoutes.POST("/tap", s.kingdomHandler.Tap)
				castleRoutes.GET("/upgrade", s.kingdomHandler.GetCastleUpgrade)
				castleRoutes.POST("/upgrade", s.kingdomHandler.UpgradeCastle)
			}

			villageRoutes := protected.Group("/villages")
			{
				villageRoutes.GET("", s.kingdomHandler.GetVillages)
				villageRoutes.GET("/:subject", s.kingdomHandler.GetVillage)
				villageRoutes.POST("/:subject/collect", s.kingdomHandler.CollectVillage)
				villageRoutes.GET("/:subject/upgrade", s.kingdomHandler.GetVillageUpgrade)
				villageRoutes.POST("/:subject/upgrade", s.kingdomHandler.UpgradeVillage)
			}

			protected.POST("/questions/generate", s.contentHandler.GenerateQuestions)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				buildingRoutes := admin.Group("/buildings")
				{
					buildingRoutes.GET("", s.buildingHandler.ListBuildings)
					buildingRoutes.GET("/:id", s.buildingHandler.GetBuilding)
					buildingRoutes.POST("", s.buildingHandler.CreateBuilding)
					buildingRoutes.PUT("/:id", s.buildingHandler.UpdateBuilding)
					buildingRoutes.DELETE("/:id", s.buildingHandler.DeleteBuilding)
				}
			}
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.port)
	return s.router.Run(addr)
}
