package app

import (
	"github.com/prepkingdom/kingdom-api/internal/http"
	"github.com/prepkingdom/kingdom-api/internal/http/handlers"
	"github.com/prepkingdom/kingdom-api/internal/http/middleware"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/auth"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// InitHTTPServer initializes the HTTP server with all dependencies
func (a *application) InitHTTPServer(
	jwtService auth.JWTService,
	userHandler *handlers.UserHandler,
	kingdomHandler *handlers.KingdomHandler,
	walletHandler *handlers.WalletHandler,
	buildingHandler *handlers.BuildingHandler,
	contentHandler *handlers.ContentHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
) *http.Server {
	port := a.config.Server.Port
	if port == "" {
		port = "8080" // default port
	}

	return http.NewServer(jwtService, userHandler, kingdomHandler, walletHandler, buildingHandler, contentHandler, errorHandler, log, port)
}

// startServer runs the HTTP server in its own goroutine so fx lifecycle
// startup is not blocked
func (a *application) startServer(server *http.Server, log *logger.Logger) {
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()
}
