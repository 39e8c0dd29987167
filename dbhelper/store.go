package dbhelper

import (
	"atelierapi/config"
	"atelierapi/logger"
	"atelierapi/store"
)

// OpenStore builds the configured store. The returned close function releases
// the database, if any.
func OpenStore(cfg *config.Config) (store.Store, func() error, error) {
	if cfg.DBDriver == config.DriverMemory {
		logger.Warn("using in-memory store, nothing will survive a restart")
		return store.NewMemoryStore(), func() error { return nil }, nil
	}

	db, err := SetupDB(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() error { return Close(db) }

	var s store.Store = store.NewGormStore(db)
	if cfg.StoreCache {
		cached, err := store.NewCachedStore(s)
		if err != nil {
			_ = closeFn()
			return nil, nil, err
		}
		s = cached
	}
	logger.Info("store ready",
		logger.String("driver", cfg.DBDriver),
		logger.Bool("cache", cfg.StoreCache),
	)
	return s, closeFn, nil
}
