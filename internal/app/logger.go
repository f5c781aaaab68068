package app

import (
	"github.com/prepkingdom/kingdom-api/internal/config"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
)

// InitLogger creates a new logger instance
func (a *application) InitLogger() *logger.Logger {
	return logger.NewLogger(config.GetEnvironment(), a.config.Log.Level)
}
