package app

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/prepkingdom/kingdom-api/internal/config"
	"go.uber.org/fx"
)

// Application provides application level setup
type Application interface {
	Setup()
	GetContext() context.Context
}

// application represents context and configure file
type application struct {
	ctx    context.Context
	config *config.Config
}

// NewApplication creates a new application
func NewApplication(ctx context.Context) Application {
	return &application{ctx: ctx}
}

// GetContext returns application context
func (a *application) GetContext() context.Context {
	return a.ctx
}

// Setup creates a new fx application with all modules
func (a *application) Setup() {
	fmt.Println("[x] Starting Prep Kingdom Service...")

	path := flag.String("e", "./config", "env file directory")
	flag.Parse()

	err := a.setupViper(*path)
	if err != nil {
		log.Panic(err.Error())
	}

	app := fx.New(
		fx.Provide(
			a.InitLogger,
			a.InitDatabase,
			a.InitJWTService,
			a.InitUserLockManager,
			a.InitBalanceCache,
			a.InitObjectStorage,
			a.InitCompletionService,
			a.InitErrorHandler,
			a.InitRepositories,
			a.InitUserUseCase,
			a.InitCollectorUseCase,
			a.InitProgressionUseCase,
			a.InitBuildingUseCase,
			a.InitContentUseCase,
			a.InitUserHandler,
			a.InitKingdomHandler,
			a.InitWalletHandler,
			a.InitBuildingHandler,
			a.InitContentHandler,
			a.InitHTTPServer,
		),
		fx.Invoke(a.startServer),
	)

	app.Run()
}
