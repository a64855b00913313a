package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/caseharbor/placement-cli/internal/engine"
	"github.com/caseharbor/placement-cli/internal/geo"
	"github.com/caseharbor/placement-cli/internal/history"
)

// matchEnv bundles the engine and its collaborators for one command run.
type matchEnv struct {
	Engine   *engine.Engine
	Recorder *history.Recorder

	store history.Store
}

// initEngine builds the history store, recorder and engine from config.
func initEngine(ctx context.Context) (*matchEnv, error) {
	store, err := openHistoryStore(ctx)
	if err != nil {
		return nil, err
	}

	retention := time.Duration(cfg.History.RetentionDays) * 24 * time.Hour
	recorder := history.NewRecorder(store, history.WithRetention(retention))

	eng, err := engine.NewFromConfig(cfg.Matching, geo.NewStatic(nil), recorder)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &matchEnv{Engine: eng, Recorder: recorder, store: store}, nil
}

func (e *matchEnv) Close() {
	if err := e.store.Close(); err != nil {
		zap.L().Warn("close history store", zap.Error(err))
	}
}

func openHistoryStore(ctx context.Context) (history.Store, error) {
	switch cfg.History.Driver {
	case "memory":
		return history.NewMemory(), nil
	case "sqlite", "":
		return history.NewSQLite(cfg.History.Path)
	case "postgres":
		if cfg.History.DatabaseURL == "" {
			return nil, eris.New("history: postgres driver requires history.database_url")
		}
		return history.NewPostgres(ctx, cfg.History.DatabaseURL)
	default:
		return nil, eris.Errorf("history: unknown driver %q (want memory, sqlite or postgres)", cfg.History.Driver)
	}
}
