package app

import (
	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/http/handlers"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/auth"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
)

func (a *application) InitUserHandler(uc domain.UserUseCase, jwt auth.JWTService) *handlers.UserHandler {
	return handlers.NewUserHandler(uc, jwt)
}

func (a *application) InitKingdomHandler(
	cc domain.CollectorUseCase,
	pc domain.ProgressionUseCase,
	log *logger.Logger,
) *handlers.KingdomHandler {
	return handlers.NewKingdomHandler(cc, pc, log)
}

func (a *application) InitWalletHandler(wr domain.WalletRepository) *handlers.WalletHandler {
	return handlers.NewWalletHandler(wr)
}

func (a *application) InitBuildingHandler(bc domain.BuildingUseCase) *handlers.BuildingHandler {
	return handlers.NewBuildingHandler(bc)
}

func (a *application) InitContentHandler(cc domain.ContentUseCase) *handlers.ContentHandler {
	return handlers.NewContentHandler(cc)
}
