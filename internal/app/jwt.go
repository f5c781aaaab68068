package app

import (
	"github.com/prepkingdom/kingdom-api/internal/config"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/auth"
)

func (a *application) InitJWTService() auth.JWTService {
	cfg := &config.JWTConfig{
		Secret: a.config.JWT.Secret,
		Expiry: a.config.JWT.Expiry,
	}
	return auth.NewJWTService(cfg)
}
