package root

import (
	"context"

	"github.com/Karthikeyasharma979/fitness/internal/config"
	"github.com/Karthikeyasharma979/fitness/internal/game"
	"github.com/Karthikeyasharma979/fitness/internal/store"
)

func loadConfig() (config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}

// openService builds the persistence adapter from config, logs in, and
// hydrates the game state.
func openService(ctx context.Context) (*game.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	local, err := store.OpenLocal(ctx, dbPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = local.Close()
	}

	var remote *store.Remote
	if cfg.Remote.URL != "" {
		remote = store.NewRemote(cfg.Remote.URL)
	}

	adapter := store.NewAdapter(local, remote)
	svc := game.NewService(adapter)
	if _, err := adapter.Login(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := svc.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
