package repository

import (
	"github.com/jafarshop/storefront/internal/cache"
)

// Repositories groups the persistence backends the server runs on
type Repositories struct {
	DeviceStorage cache.Storage
}

// NewMemoryRepositories keeps everything in process memory
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		DeviceStorage: cache.NewMemory(),
	}
}
