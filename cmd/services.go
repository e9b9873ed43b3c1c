package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kokeshes/wxk-check/internal/catalog"
	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/draft"
	"github.com/kokeshes/wxk-check/internal/questionbank"
	"github.com/kokeshes/wxk-check/internal/screens"
	"github.com/kokeshes/wxk-check/internal/store"
)

// services are the opened store and the objects built on it.
type services struct {
	store  *store.Store
	engine *diagnosis.Engine
	drafts *draft.Service
}

// buildEngine loads the catalog and question bank named by the config, or
// the built-in ones.
func buildEngine() (*diagnosis.Engine, error) {
	cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	bank, err := questionbank.LoadOrDefault(cfg.QuestionsPath)
	if err != nil {
		return nil, err
	}
	e := diagnosis.NewEngine(cat, bank,
		diagnosis.WithBaseline(cfg.BaselineCode, cfg.BaselineScore),
		diagnosis.WithLimit(cfg.Limit),
		diagnosis.WithLogger(logger.Named("diagnosis")),
	)
	logger.Debug("engine ready",
		zap.Int("conditions", cat.Len()),
		zap.Int("questions", bank.Len()),
		zap.Int("issues", len(e.Issues())),
	)
	return e, nil
}

// openStore opens the database at the resolved path.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(logger.Named("store")))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openServices opens the store and builds the engine and draft service.
func openServices() (*services, error) {
	engine, err := buildEngine()
	if err != nil {
		return nil, err
	}
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	drafts := draft.NewService(st.DraftRepo(),
		draft.WithKeep(cfg.DraftKeep),
		draft.WithDefaultProfile(diagnosis.ParseProfile(cfg.Profile)),
		draft.WithLogger(logger.Named("draft")),
	)
	return &services{store: st, engine: engine, drafts: drafts}, nil
}

func (s *services) Close() error {
	return s.store.Close()
}

// deps returns the screen dependencies.
func (s *services) deps() screens.Deps {
	return screens.Deps{
		Engine:  s.engine,
		Entries: s.store.EntryRepo(),
		Runs:    s.store.RunRepo(),
		Drafts:  s.drafts,
		Logger:  logger.Named("tui"),
	}
}
