package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/realtoken/questline/internal/config"
	"github.com/realtoken/questline/internal/content"
	"github.com/realtoken/questline/internal/flow"
	"github.com/realtoken/questline/internal/logging"
	"github.com/realtoken/questline/internal/progression"
	"github.com/realtoken/questline/internal/rewards"
	"github.com/realtoken/questline/internal/storage"
)

// services bundles everything a command needs: config, logger, the
// SQLite-backed store and the domain managers wired on top of it.
type services struct {
	cfg    config.Config
	log    *zap.Logger
	store  *storage.SQLiteStore
	repo   *content.Repository
	prog   *progression.Manager
	ledger *rewards.Ledger
	engine *flow.Engine
}

// buildServices loads config, applies flag overrides and wires the full
// service graph. Callers must Close when done.
func buildServices(cmd *cobra.Command) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		cfg.DefaultLanguage = lang
	}
	if url, _ := cmd.Flags().GetString("content-url"); url != "" {
		cfg.ContentBaseURL = url
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}

	log, err := logging.New(cfg.LogMode, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath != "" {
		if err := storage.EnsureDir(dbPath); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	} else {
		dbPath, err = storage.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}

	st, err := storage.OpenSQLite(dbPath, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	repo := content.NewRepository(content.RepositoryOptions{
		BaseURL:         cfg.ContentBaseURL,
		DefaultLanguage: cfg.DefaultLanguage,
		Store:           st,
		Logger:          log,
	})
	prog := progression.NewManager(progression.ManagerOptions{
		Store:  st,
		Logger: log,
	})
	ledger := rewards.NewLedger(rewards.LedgerOptions{
		Store:          st,
		Logger:         log,
		ConversionRate: cfg.ConversionRate,
	})
	engine := flow.NewEngine(flow.Options{
		Content:     repo,
		Progression: prog,
		Ledger:      ledger,
	})

	return &services{
		cfg:    cfg,
		log:    log,
		store:  st,
		repo:   repo,
		prog:   prog,
		ledger: ledger,
		engine: engine,
	}, nil
}

func (s *services) Close() error {
	_ = s.log.Sync()
	return s.store.Close()
}
