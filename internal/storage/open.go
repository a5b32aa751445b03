package storage

import (
	"fmt"

	"github.com/meur/harborline/internal/config"
)

// Open builds the backend selected by cfg.Store.Driver.
func Open(cfg config.Config) (Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		return NewSQLite(cfg.Store.DBPath)
	case config.DriverFirestore:
		return NewFirestore(cfg.Firestore), nil
	case config.DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Store.Driver)
	}
}
