package app

import (
	"log"
	"os"

	"github.com/prepkingdom/kingdom-api/internal/http/middleware"
)

func (a *application) InitErrorHandler() *middleware.ErrorHandler {
	logger := log.New(os.Stdout, "[error] ", log.LstdFlags)
	return middleware.NewErrorHandler(logger)
}
