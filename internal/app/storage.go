package app

import (
	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/storage"
)

func (a *application) InitObjectStorage() domain.ObjectStorage {
	return storage.NewObjectStorage(
		a.config.Storage.URL,
		a.config.Storage.APIToken,
		a.config.Storage.Bucket,
		a.config.Storage.PublicURL,
	)
}
