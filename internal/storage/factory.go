package storage

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/blog-portal/internal/common"
	"github.com/bobmcallan/blog-portal/internal/config"
	"github.com/bobmcallan/blog-portal/internal/interfaces"
	"github.com/bobmcallan/blog-portal/internal/storage/badger"
	"github.com/bobmcallan/blog-portal/internal/storage/memory"
	"github.com/bobmcallan/blog-portal/internal/storage/sqlite"
)

// NewStorageManager creates the storage manager selected by storage.backend.
func NewStorageManager(logger *common.Logger, cfg *config.Config) (interfaces.StorageManager, error) {
	switch strings.ToLower(cfg.Storage.Backend) {
	case "", "badger":
		return badger.NewManager(logger, &cfg.Storage.Badger)
	case "sqlite":
		return sqlite.NewManager(logger, &cfg.Storage.SQLite)
	case "memory":
		return memory.NewManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
