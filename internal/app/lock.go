package app

import (
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/lock"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
)

func (a *application) InitUserLockManager(log *logger.Logger) *lock.UserLockManager {
	return lock.NewUserLockManager(log)
}
