package app

import (
	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/ai"
)

func (a *application) InitCompletionService() domain.CompletionService {
	return ai.NewCompletionService(
		a.config.AI.URL,
		a.config.AI.APIKey,
		a.config.AI.Model,
	)
}
